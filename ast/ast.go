package ast

// Stmt is a statement node. A program is an ordered []Stmt; blocks are
// ordered []Stmt as well. Once built the tree is read-only.
type Stmt interface {
	isStmt()
}

type LetStmt struct {
	Name  string
	Value Expr
}

func (LetStmt) isStmt() {}

type AssignStmt struct {
	Name  string
	Value Expr
}

func (AssignStmt) isStmt() {}

type ExprStmt struct {
	X Expr
}

func (ExprStmt) isStmt() {}

type IfStmt struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
}

func (IfStmt) isStmt() {}

type WhileStmt struct {
	Cond Expr
	Body []Stmt
}

func (WhileStmt) isStmt() {}

type DoWhileStmt struct {
	Body []Stmt
	Cond Expr
}

func (DoWhileStmt) isStmt() {}

// ForStmt rebinds Var from a fresh evaluation of Step after every
// iteration; there is no implicit increment.
type ForStmt struct {
	Var   string
	Start Expr
	Cond  Expr
	Step  Expr
	Body  []Stmt
}

func (ForStmt) isStmt() {}

type FnDeclStmt struct {
	Name   string
	Params []string
	Body   []Stmt
}

func (FnDeclStmt) isStmt() {}

type ReturnStmt struct {
	Value Expr
}

func (ReturnStmt) isStmt() {}

type Expr interface {
	isExpr()
}

type NumberLit struct {
	Value int64
}

func (NumberLit) isExpr() {}

type BoolLit struct {
	Value bool
}

func (BoolLit) isExpr() {}

type VarExpr struct {
	Name string
}

func (VarExpr) isExpr() {}

type BinaryExpr struct {
	Left  Expr
	Op    BinOp
	Right Expr
}

func (BinaryExpr) isExpr() {}

type CallExpr struct {
	Name string
	Args []Expr
}

func (CallExpr) isExpr() {}

type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Gt
	Lt
	Eq
	Neq
)

func (op BinOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Gt:
		return ">"
	case Lt:
		return "<"
	case Eq:
		return "=="
	case Neq:
		return "!="
	default:
		return "?"
	}
}
