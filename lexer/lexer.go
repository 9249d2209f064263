package lexer

import (
	"strconv"
	"unicode"

	"github.com/implang/imp/diag"
)

// Kind enumerates token kinds. EOF is never produced by Lex; the parser
// synthesizes it when it peeks past the end of the token slice.
type Kind int

const (
	EOF Kind = iota

	// Keywords
	Let
	Fn
	If
	Else
	While
	Do
	For
	Return
	True
	False

	Ident
	Number

	Plus
	Minus
	Star
	Slash
	Equal // "="
	Eq    // "=="
	Neq   // "!="
	Gt
	Lt
	LParen
	RParen
	LBrace
	RBrace
	Semicolon
	Comma
	Colon
)

var kindNames = map[Kind]string{
	EOF:       "end of input",
	Let:       `"let"`,
	Fn:        `"fn"`,
	If:        `"if"`,
	Else:      `"else"`,
	While:     `"while"`,
	Do:        `"do"`,
	For:       `"for"`,
	Return:    `"return"`,
	True:      `"true"`,
	False:     `"false"`,
	Ident:     "identifier",
	Number:    "number",
	Plus:      `"+"`,
	Minus:     `"-"`,
	Star:      `"*"`,
	Slash:     `"/"`,
	Equal:     `"="`,
	Eq:        `"=="`,
	Neq:       `"!="`,
	Gt:        `">"`,
	Lt:        `"<"`,
	LParen:    `"("`,
	RParen:    `")"`,
	LBrace:    `"{"`,
	RBrace:    `"}"`,
	Semicolon: `";"`,
	Comma:     `","`,
	Colon:     `":"`,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown token"
}

// Token is one lexical unit. Name is set for Ident tokens, Num for Number
// tokens; both are zero otherwise.
type Token struct {
	Kind Kind
	Name string
	Num  int64
}

func (t Token) String() string {
	switch t.Kind {
	case Ident:
		return "identifier " + strconv.Quote(t.Name)
	case Number:
		return "number " + strconv.FormatInt(t.Num, 10)
	default:
		return t.Kind.String()
	}
}

var keywords = map[string]Kind{
	"let":    Let,
	"fn":     Fn,
	"if":     If,
	"else":   Else,
	"while":  While,
	"do":     Do,
	"for":    For,
	"return": Return,
	"true":   True,
	"false":  False,
}

var symbols = map[rune]Kind{
	'+': Plus,
	'-': Minus,
	'*': Star,
	'/': Slash,
	'>': Gt,
	'<': Lt,
	'(': LParen,
	')': RParen,
	'{': LBrace,
	'}': RBrace,
	';': Semicolon,
	',': Comma,
	':': Colon,
}

// Lex scans src left to right in a single pass with one-character lookahead.
// The first unrecognized character aborts the whole pass.
func Lex(src string) ([]Token, error) {
	r := []rune(src)
	toks := make([]Token, 0, len(r)/2)
	for i := 0; i < len(r); {
		ch := r[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			i++
		case ch >= '0' && ch <= '9':
			// Decimal accumulation, no overflow check. Negative literals do
			// not exist; the parser desugars unary minus instead.
			var n int64
			for i < len(r) && r[i] >= '0' && r[i] <= '9' {
				n = n*10 + int64(r[i]-'0')
				i++
			}
			toks = append(toks, Token{Kind: Number, Num: n})
		case isIdentStart(ch):
			j := i + 1
			for j < len(r) && isIdentPart(r[j]) {
				j++
			}
			word := string(r[i:j])
			if kind, ok := keywords[word]; ok {
				toks = append(toks, Token{Kind: kind})
			} else {
				toks = append(toks, Token{Kind: Ident, Name: word})
			}
			i = j
		case ch == '=':
			i++
			if i < len(r) && r[i] == '=' {
				toks = append(toks, Token{Kind: Eq})
				i++
			} else {
				toks = append(toks, Token{Kind: Equal})
			}
		case ch == '!':
			i++
			if i < len(r) && r[i] == '=' {
				toks = append(toks, Token{Kind: Neq})
				i++
			} else {
				return nil, diag.Syntaxf("unexpected character after '!'")
			}
		default:
			kind, ok := symbols[ch]
			if !ok {
				return nil, diag.Syntaxf("unexpected character %q", ch)
			}
			toks = append(toks, Token{Kind: kind})
			i++
		}
	}
	return toks, nil
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
