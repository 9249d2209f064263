package ast

import "testing"

func TestDump(t *testing.T) {
	program := []Stmt{
		LetStmt{Name: "x", Value: BinaryExpr{
			Left:  NumberLit{Value: 2},
			Op:    Add,
			Right: NumberLit{Value: 3},
		}},
		IfStmt{
			Cond: BinaryExpr{Left: VarExpr{Name: "x"}, Op: Gt, Right: NumberLit{Value: 4}},
			Then: []Stmt{ReturnStmt{Value: CallExpr{Name: "f", Args: []Expr{VarExpr{Name: "x"}}}}},
		},
	}
	want := `Let x
  Binary +
    Number 2
    Number 3
If
  Binary >
    Variable x
    Number 4
Then
  Return
    Call f
      Variable x
`
	if got := Dump(program); got != want {
		t.Fatalf("unexpected dump:\n%s", got)
	}
}
