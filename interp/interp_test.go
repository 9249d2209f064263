package interp

import (
	"errors"
	"strings"
	"testing"

	"github.com/implang/imp/diag"
	"github.com/implang/imp/lexer"
	"github.com/implang/imp/parser"
)

func run(t *testing.T, src string) *Interpreter {
	t.Helper()
	in, err := tryRun(t, src)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return in
}

func tryRun(t *testing.T, src string) (*Interpreter, error) {
	t.Helper()
	toks, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	program, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	in := New()
	return in, in.Run(program)
}

func runtimeErr(t *testing.T, src, wantMsg string) {
	t.Helper()
	_, err := tryRun(t, src)
	if err == nil {
		t.Fatalf("expected runtime error for %q", src)
	}
	var derr *diag.Error
	if !errors.As(err, &derr) || derr.Kind != diag.Runtime {
		t.Fatalf("expected a runtime error, got %v", err)
	}
	if !strings.Contains(derr.Msg, wantMsg) {
		t.Fatalf("message %q does not mention %q", derr.Msg, wantMsg)
	}
}

func want(t *testing.T, in *Interpreter, name string, value int64) {
	t.Helper()
	got, ok := in.Lookup(name)
	if !ok {
		t.Fatalf("variable %s is not bound", name)
	}
	if got != value {
		t.Fatalf("%s = %d, want %d", name, got, value)
	}
}

func TestArithmetic(t *testing.T) {
	in := run(t, `
		let a = 10 - 3 - 2 ;
		let b = 2 + 3 * 4 ;
		let c = -5 + 3 ;
		let d = 7 / 2 ;
		let e = (2 + 3) * 4 ;
	`)
	want(t, in, "a", 5)
	want(t, in, "b", 14)
	want(t, in, "c", -2)
	want(t, in, "d", 3)
	want(t, in, "e", 20)
}

func TestComparisonsYieldZeroOne(t *testing.T) {
	in := run(t, `
		let a = 1 < 2 ;
		let b = 1 > 2 ;
		let c = 3 == 3 ;
		let d = 3 != 3 ;
		let e = true ;
		let f = false ;
	`)
	want(t, in, "a", 1)
	want(t, in, "b", 0)
	want(t, in, "c", 1)
	want(t, in, "d", 0)
	want(t, in, "e", 1)
	want(t, in, "f", 0)
}

func TestIfElse(t *testing.T) {
	in := run(t, `
		let x = 10 ;
		let y = 0 ;
		if (x > 5) { y = 1 ; } else { y = 2 ; }
		let z = 0 ;
		if (x < 5) { z = 1 ; } else { z = 2 ; }
	`)
	want(t, in, "y", 1)
	want(t, in, "z", 2)
}

func TestWhile(t *testing.T) {
	in := run(t, "let y = 0 ; while (y < 5) { y = y + 1 ; }")
	want(t, in, "y", 5)
}

func TestDoWhileRunsBodyOnce(t *testing.T) {
	// The condition is false before the first test, yet the body runs once.
	in := run(t, "let y = 10 ; do { y = y - 1 ; } while (y > 100) ;")
	want(t, in, "y", 9)
}

func TestDoWhileLoops(t *testing.T) {
	in := run(t, "let y = 5 ; do { y = y - 1 ; } while (y > 0) ;")
	want(t, in, "y", 0)
}

func TestForLoopVariableLeaks(t *testing.T) {
	in := run(t, "for (i = 0 ; i < 5 ; i + 1) { }")
	want(t, in, "i", 5)
}

func TestForStepIsGeneralExpression(t *testing.T) {
	in := run(t, "let n = 0 ; for (i = 1 ; i < 100 ; i * 2) { n = n + 1 ; }")
	want(t, in, "i", 128)
	want(t, in, "n", 7)
}

func TestCallIsolation(t *testing.T) {
	in := run(t, `
		let x = 10 ;
		fn f(x) { x = x + 1 ; return x ; }
		let y = f(x) ;
	`)
	want(t, in, "x", 10)
	want(t, in, "y", 11)
}

func TestCalleeReadsCallerEnvironment(t *testing.T) {
	// The callee inherits a copy of every caller-visible variable; its own
	// writes never travel back.
	in := run(t, `
		let g = 7 ;
		fn f() { let g = g + 1 ; return g ; }
		let a = f() ;
	`)
	want(t, in, "g", 7)
	want(t, in, "a", 8)
}

func TestCallWithoutReturnYieldsZero(t *testing.T) {
	in := run(t, "fn f() { let a = 1 ; } let x = f() ;")
	want(t, in, "x", 0)
}

func TestReturnPropagatesThroughNesting(t *testing.T) {
	in := run(t, `
		fn firstOver(limit) {
			let i = 0 ;
			while (true) {
				if (i * i > limit) {
					return i ;
				}
				i = i + 1 ;
			}
			return 0 - 1 ;
		}
		let x = firstOver(50) ;
	`)
	want(t, in, "x", 8)
}

func TestRecursion(t *testing.T) {
	in := run(t, `
		fn fib(n) {
			if (n < 2) { return n ; }
			return fib(n - 1) + fib(n - 2) ;
		}
		let x = fib(10) ;
	`)
	want(t, in, "x", 55)
}

func TestTopLevelReturnContinues(t *testing.T) {
	in := run(t, "return 5 ; let x = 1 ;")
	want(t, in, "x", 1)
}

func TestFunctionTableFollowsExecutionOrder(t *testing.T) {
	// A call that executes before the declaration statement has run fails,
	// even though the declaration appears later in the text.
	runtimeErr(t, "let x = f() ; fn f() { return 1 ; }", "undefined function: f")

	// Declarations inside untaken branches never register.
	runtimeErr(t, "if (false) { fn f() { return 1 ; } } let x = f() ;", "undefined function: f")
}

func TestDivisionByZero(t *testing.T) {
	runtimeErr(t, "let x = 1 / 0 ;", "division by zero")
}

func TestUndefinedVariable(t *testing.T) {
	runtimeErr(t, "let x = y + 1 ;", "undefined variable: y")
}

func TestAssignToUndeclared(t *testing.T) {
	runtimeErr(t, "x = 5 ;", "undefined variable: x")
}

func TestArgumentCountMismatch(t *testing.T) {
	runtimeErr(t, "fn f(a, b) { return a ; } let x = f(1) ;", "wrong number of arguments in call to f")
}

func TestCallDepthLimit(t *testing.T) {
	runtimeErr(t, "fn f() { return f() ; } let x = f() ;", "call depth limit exceeded in f")
}

func TestSnapshotIsACopy(t *testing.T) {
	in := run(t, "let x = 1 ;")
	snap := in.Snapshot()
	snap["x"] = 99
	want(t, in, "x", 1)
}
