package lexer

import (
	"errors"
	"reflect"
	"testing"

	"github.com/implang/imp/diag"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexDeterministic(t *testing.T) {
	src := "let x = 10 ; while (x > 0) { x = x - 1 ; }"
	first, err := Lex(src)
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	second, err := Lex(src)
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical input produced different token sequences")
	}
}

func TestKeywordsAndIdents(t *testing.T) {
	toks, err := Lex("let letter while whiled _x x1 fn if else do for return true false")
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	want := []Kind{Let, Ident, While, Ident, Ident, Ident, Fn, If, Else, Do, For, Return, True, False}
	if !reflect.DeepEqual(kinds(toks), want) {
		t.Fatalf("unexpected kinds: %v", kinds(toks))
	}
	if toks[1].Name != "letter" || toks[3].Name != "whiled" || toks[4].Name != "_x" || toks[5].Name != "x1" {
		t.Fatalf("unexpected identifier names: %+v", toks)
	}
}

func TestNumbers(t *testing.T) {
	toks, err := Lex("0 42 007 123456789")
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	want := []int64{0, 42, 7, 123456789}
	if len(toks) != len(want) {
		t.Fatalf("unexpected token count: %d", len(toks))
	}
	for i, w := range want {
		if toks[i].Kind != Number || toks[i].Num != w {
			t.Fatalf("token %d: got %v, want number %d", i, toks[i], w)
		}
	}
}

func TestOperatorsAndPunctuation(t *testing.T) {
	toks, err := Lex("+ - * / = == != > < ( ) { } ; , :")
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	want := []Kind{Plus, Minus, Star, Slash, Equal, Eq, Neq, Gt, Lt, LParen, RParen, LBrace, RBrace, Semicolon, Comma, Colon}
	if !reflect.DeepEqual(kinds(toks), want) {
		t.Fatalf("unexpected kinds: %v", kinds(toks))
	}
}

func TestEqualLookahead(t *testing.T) {
	toks, err := Lex("x==y=z")
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	want := []Kind{Ident, Eq, Ident, Equal, Ident}
	if !reflect.DeepEqual(kinds(toks), want) {
		t.Fatalf("unexpected kinds: %v", kinds(toks))
	}
}

func TestBareBangFails(t *testing.T) {
	_, err := Lex("!x")
	if err == nil {
		t.Fatalf("expected error for bare '!'")
	}
	var derr *diag.Error
	if !errors.As(err, &derr) || derr.Kind != diag.Syntax {
		t.Fatalf("unexpected error: %v", err)
	}
	if derr.Error() != "Syntax error: unexpected character after '!'" {
		t.Fatalf("unexpected message: %q", derr.Error())
	}
}

func TestUnexpectedCharacterAborts(t *testing.T) {
	toks, err := Lex("let x = 5 @ let y = 6 ;")
	if err == nil {
		t.Fatalf("expected error for '@'")
	}
	if toks != nil {
		t.Fatalf("no partial token list should be returned")
	}
	var derr *diag.Error
	if !errors.As(err, &derr) || derr.Kind != diag.Syntax {
		t.Fatalf("unexpected error: %v", err)
	}
	if derr.Error() != "Syntax error: unexpected character '@'" {
		t.Fatalf("unexpected message: %q", derr.Error())
	}
}
