package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders a statement sequence as an indented tree, one node per line.
// The driver uses it to show parse results; nothing in the pipeline depends
// on the exact layout.
func Dump(program []Stmt) string {
	var b strings.Builder
	for _, s := range program {
		dumpStmt(&b, s, 0)
	}
	return b.String()
}

func line(b *strings.Builder, depth int, text string) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(text)
	b.WriteByte('\n')
}

func dumpBlock(b *strings.Builder, body []Stmt, depth int) {
	for _, s := range body {
		dumpStmt(b, s, depth)
	}
}

func dumpStmt(b *strings.Builder, s Stmt, depth int) {
	switch st := s.(type) {
	case LetStmt:
		line(b, depth, "Let "+st.Name)
		dumpExpr(b, st.Value, depth+1)
	case AssignStmt:
		line(b, depth, "Assign "+st.Name)
		dumpExpr(b, st.Value, depth+1)
	case ExprStmt:
		line(b, depth, "Expr")
		dumpExpr(b, st.X, depth+1)
	case IfStmt:
		line(b, depth, "If")
		dumpExpr(b, st.Cond, depth+1)
		line(b, depth, "Then")
		dumpBlock(b, st.Then, depth+1)
		if len(st.Else) > 0 {
			line(b, depth, "Else")
			dumpBlock(b, st.Else, depth+1)
		}
	case WhileStmt:
		line(b, depth, "While")
		dumpExpr(b, st.Cond, depth+1)
		dumpBlock(b, st.Body, depth+1)
	case DoWhileStmt:
		line(b, depth, "DoWhile")
		dumpBlock(b, st.Body, depth+1)
		line(b, depth, "Until not")
		dumpExpr(b, st.Cond, depth+1)
	case ForStmt:
		line(b, depth, "For "+st.Var)
		dumpExpr(b, st.Start, depth+1)
		dumpExpr(b, st.Cond, depth+1)
		dumpExpr(b, st.Step, depth+1)
		dumpBlock(b, st.Body, depth+1)
	case FnDeclStmt:
		line(b, depth, fmt.Sprintf("FnDecl %s(%s)", st.Name, strings.Join(st.Params, ", ")))
		dumpBlock(b, st.Body, depth+1)
	case ReturnStmt:
		line(b, depth, "Return")
		dumpExpr(b, st.Value, depth+1)
	}
}

func dumpExpr(b *strings.Builder, e Expr, depth int) {
	switch ex := e.(type) {
	case NumberLit:
		line(b, depth, "Number "+strconv.FormatInt(ex.Value, 10))
	case BoolLit:
		line(b, depth, "Bool "+strconv.FormatBool(ex.Value))
	case VarExpr:
		line(b, depth, "Variable "+ex.Name)
	case BinaryExpr:
		line(b, depth, "Binary "+ex.Op.String())
		dumpExpr(b, ex.Left, depth+1)
		dumpExpr(b, ex.Right, depth+1)
	case CallExpr:
		line(b, depth, "Call "+ex.Name)
		for _, a := range ex.Args {
			dumpExpr(b, a, depth+1)
		}
	}
}
