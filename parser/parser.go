package parser

import (
	"github.com/implang/imp/ast"
	"github.com/implang/imp/diag"
	"github.com/implang/imp/lexer"
)

const maxNesting = 256

type Parser struct {
	tokens []lexer.Token
	pos    int
	depth  int
}

// Parse consumes the whole token slice and builds the statement sequence.
// The first mismatch aborts parsing; no partial tree is returned.
func Parse(tokens []lexer.Token) ([]ast.Stmt, error) {
	p := &Parser{tokens: tokens}
	stmts := []ast.Stmt{}
	for p.peek().Kind != lexer.EOF {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

func (p *Parser) peek() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Kind: lexer.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) next() lexer.Token {
	t := p.peek()
	p.pos++
	return t
}

func (p *Parser) expect(kind lexer.Kind) error {
	if p.peek().Kind != kind {
		return diag.Syntaxf("expected %s, found %s", kind, p.peek())
	}
	p.pos++
	return nil
}

func (p *Parser) expectIdent(what string) (string, error) {
	if p.peek().Kind != lexer.Ident {
		return "", diag.Syntaxf("expected %s, found %s", what, p.peek())
	}
	return p.next().Name, nil
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.peek().Kind {
	case lexer.Let:
		return p.parseLet()
	case lexer.If:
		return p.parseIf()
	case lexer.While:
		return p.parseWhile()
	case lexer.Do:
		return p.parseDoWhile()
	case lexer.For:
		return p.parseFor()
	case lexer.Fn:
		return p.parseFnDecl()
	case lexer.Return:
		return p.parseReturn()
	case lexer.Ident:
		// A leading identifier is resolved by the next token alone: "=" makes
		// it an assignment, anything else makes the identifier itself the
		// entire expression statement. A statement-initial identifier is
		// therefore never the start of a larger expression.
		name := p.next().Name
		if p.peek().Kind == lexer.Equal {
			p.next()
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expect(lexer.Semicolon); err != nil {
				return nil, err
			}
			return ast.AssignStmt{Name: name, Value: value}, nil
		}
		if err := p.expect(lexer.Semicolon); err != nil {
			return nil, err
		}
		return ast.ExprStmt{X: ast.VarExpr{Name: name}}, nil
	default:
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.Semicolon); err != nil {
			return nil, err
		}
		return ast.ExprStmt{X: x}, nil
	}
}

func (p *Parser) parseLet() (ast.Stmt, error) {
	p.next()
	name, err := p.expectIdent("identifier after let")
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.Equal); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return ast.LetStmt{Name: name, Value: value}, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	p.next()
	if err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var els []ast.Stmt
	if p.peek().Kind == lexer.Else {
		p.next()
		els, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return ast.IfStmt{Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	p.next()
	if err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.WhileStmt{Cond: cond, Body: body}, nil
}

func (p *Parser) parseDoWhile() (ast.Stmt, error) {
	p.next()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.While); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return ast.DoWhileStmt{Body: body, Cond: cond}, nil
}

func (p *Parser) parseFor() (ast.Stmt, error) {
	p.next()
	if err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	name, err := p.expectIdent("identifier in for loop")
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.Equal); err != nil {
		return nil, err
	}
	start, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	step, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.ForStmt{Var: name, Start: start, Cond: cond, Step: step, Body: body}, nil
}

func (p *Parser) parseFnDecl() (ast.Stmt, error) {
	p.next()
	name, err := p.expectIdent("function name")
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	params := []string{}
	if p.peek().Kind != lexer.RParen {
		for {
			param, err := p.expectIdent("parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if p.peek().Kind != lexer.Comma {
				break
			}
			p.next()
		}
	}
	if err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.FnDeclStmt{Name: name, Params: params, Body: body}, nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	p.next()
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return ast.ReturnStmt{Value: value}, nil
}

func (p *Parser) parseBlock() ([]ast.Stmt, error) {
	if err := p.expect(lexer.LBrace); err != nil {
		return nil, err
	}
	stmts := []ast.Stmt{}
	for p.peek().Kind != lexer.RBrace {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if err := p.expect(lexer.RBrace); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseBinary(1)
}

// Precedence tiers, all left-associative: equality 1, comparison 2,
// additive 3, multiplicative 4.
func binaryOp(k lexer.Kind) (ast.BinOp, int, bool) {
	switch k {
	case lexer.Eq:
		return ast.Eq, 1, true
	case lexer.Neq:
		return ast.Neq, 1, true
	case lexer.Gt:
		return ast.Gt, 2, true
	case lexer.Lt:
		return ast.Lt, 2, true
	case lexer.Plus:
		return ast.Add, 3, true
	case lexer.Minus:
		return ast.Sub, 3, true
	case lexer.Star:
		return ast.Mul, 4, true
	case lexer.Slash:
		return ast.Div, 4, true
	default:
		return 0, 0, false
	}
}

func (p *Parser) parseBinary(minPrec int) (ast.Expr, error) {
	p.depth++
	if p.depth > maxNesting {
		return nil, diag.Syntaxf("expression nesting too deep near %s", p.peek())
	}
	defer func() { p.depth-- }()

	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, prec, ok := binaryOp(p.peek().Kind)
		if !ok || prec < minPrec {
			break
		}
		p.next()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = ast.BinaryExpr{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.peek().Kind == lexer.Minus {
		p.next()
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		// -x desugars to 0 - x; negative literals never exist in the tree.
		return ast.BinaryExpr{Left: ast.NumberLit{}, Op: ast.Sub, Right: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	t := p.next()
	switch t.Kind {
	case lexer.Number:
		return ast.NumberLit{Value: t.Num}, nil
	case lexer.True:
		return ast.BoolLit{Value: true}, nil
	case lexer.False:
		return ast.BoolLit{Value: false}, nil
	case lexer.Ident:
		if p.peek().Kind != lexer.LParen {
			return ast.VarExpr{Name: t.Name}, nil
		}
		p.next()
		args := []ast.Expr{}
		if p.peek().Kind != lexer.RParen {
			for {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.peek().Kind != lexer.Comma {
					break
				}
				p.next()
			}
		}
		if err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return ast.CallExpr{Name: t.Name, Args: args}, nil
	case lexer.LParen:
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return x, nil
	default:
		return nil, diag.Syntaxf("unexpected token %s in expression", t)
	}
}
