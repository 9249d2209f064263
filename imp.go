package imp

import (
	"github.com/implang/imp/ast"
	"github.com/implang/imp/interp"
	"github.com/implang/imp/lexer"
	"github.com/implang/imp/parser"
	"github.com/implang/imp/typecheck"
)

// Tokenize runs the lexer alone for tooling use.
func Tokenize(src string) ([]lexer.Token, error) {
	return lexer.Lex(src)
}

// Parse lexes and parses src into its statement sequence.
func Parse(src string) ([]ast.Stmt, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	return parser.Parse(toks)
}

// Check parses src and runs the static type checker over it.
func Check(src string) error {
	program, err := Parse(src)
	if err != nil {
		return err
	}
	return typecheck.New().Check(program)
}

// Run parses, type-checks, and executes src in a fresh interpreter. The
// returned interpreter exposes the final variable state.
func Run(src string) (*interp.Interpreter, error) {
	program, err := Parse(src)
	if err != nil {
		return nil, err
	}
	if err := typecheck.New().Check(program); err != nil {
		return nil, err
	}
	return execute(program)
}

// Interpret executes src without the advisory type check.
func Interpret(src string) (*interp.Interpreter, error) {
	program, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return execute(program)
}

func execute(program []ast.Stmt) (*interp.Interpreter, error) {
	in := interp.New()
	if err := in.Run(program); err != nil {
		return nil, err
	}
	return in, nil
}
