package typecheck

import (
	"github.com/implang/imp/ast"
	"github.com/implang/imp/diag"
)

type Type int

const (
	Int Type = iota
	Bool
	Void
)

func (t Type) String() string {
	switch t {
	case Int:
		return "Int"
	case Bool:
		return "Bool"
	default:
		return "Void"
	}
}

type signature struct {
	params []Type
	ret    Type
}

// Checker runs a single forward pass over the statement sequence with one
// flat name→Type map and one flat name→signature map. There are no nested
// scopes: function parameters land in the same map as globals. The check is
// advisory; the interpreter never requires it to have run.
type Checker struct {
	vars  map[string]Type
	funcs map[string]signature
}

func New() *Checker {
	return &Checker{
		vars:  map[string]Type{},
		funcs: map[string]signature{},
	}
}

// Check validates program and stops at the first error.
func (c *Checker) Check(program []ast.Stmt) error {
	for _, s := range program {
		if err := c.checkStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkBlock(body []ast.Stmt) error {
	for _, s := range body {
		if err := c.checkStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkStmt(s ast.Stmt) error {
	switch st := s.(type) {
	case ast.LetStmt:
		// let rebinds freely; shadowing a prior declaration is not an error.
		t, err := c.checkExpr(st.Value)
		if err != nil {
			return err
		}
		c.vars[st.Name] = t
		return nil
	case ast.AssignStmt:
		t, err := c.checkExpr(st.Value)
		if err != nil {
			return err
		}
		declared, ok := c.vars[st.Name]
		if !ok {
			return diag.Typef("undeclared variable: %s", st.Name)
		}
		if declared != t {
			return diag.Typef("type mismatch in assignment to %s", st.Name)
		}
		return nil
	case ast.ExprStmt:
		_, err := c.checkExpr(st.X)
		return err
	case ast.IfStmt:
		t, err := c.checkExpr(st.Cond)
		if err != nil {
			return err
		}
		if t != Bool {
			return diag.Typef("condition in 'if' must be a boolean")
		}
		if err := c.checkBlock(st.Then); err != nil {
			return err
		}
		return c.checkBlock(st.Else)
	case ast.WhileStmt:
		return c.checkLoop(st.Cond, st.Body)
	case ast.DoWhileStmt:
		return c.checkLoop(st.Cond, st.Body)
	case ast.ForStmt:
		t, err := c.checkExpr(st.Start)
		if err != nil {
			return err
		}
		if t != Int {
			return diag.Typef("invalid types in 'for' loop")
		}
		// The loop variable is registered before the condition and step are
		// checked, so a fresh variable is visible to both.
		c.vars[st.Var] = Int
		t, err = c.checkExpr(st.Cond)
		if err != nil {
			return err
		}
		if t != Bool {
			return diag.Typef("invalid types in 'for' loop")
		}
		t, err = c.checkExpr(st.Step)
		if err != nil {
			return err
		}
		if t != Int {
			return diag.Typef("invalid types in 'for' loop")
		}
		return c.checkBlock(st.Body)
	case ast.FnDeclStmt:
		// Every parameter is assumed Int and the declared return type is Int;
		// Bool parameters and returns cannot be declared. The body's return
		// expressions are checked but never compared to the signature.
		params := make([]Type, len(st.Params))
		for i := range params {
			params[i] = Int
		}
		c.funcs[st.Name] = signature{params: params, ret: Int}
		for _, p := range st.Params {
			c.vars[p] = Int
		}
		return c.checkBlock(st.Body)
	case ast.ReturnStmt:
		_, err := c.checkExpr(st.Value)
		return err
	default:
		return nil
	}
}

func (c *Checker) checkLoop(cond ast.Expr, body []ast.Stmt) error {
	t, err := c.checkExpr(cond)
	if err != nil {
		return err
	}
	if t != Bool {
		return diag.Typef("condition in loop must be a boolean")
	}
	return c.checkBlock(body)
}

func (c *Checker) checkExpr(e ast.Expr) (Type, error) {
	switch ex := e.(type) {
	case ast.NumberLit:
		return Int, nil
	case ast.BoolLit:
		return Bool, nil
	case ast.VarExpr:
		t, ok := c.vars[ex.Name]
		if !ok {
			return Void, diag.Typef("undeclared variable: %s", ex.Name)
		}
		return t, nil
	case ast.BinaryExpr:
		lt, err := c.checkExpr(ex.Left)
		if err != nil {
			return Void, err
		}
		rt, err := c.checkExpr(ex.Right)
		if err != nil {
			return Void, err
		}
		switch ex.Op {
		case ast.Add, ast.Sub, ast.Mul, ast.Div:
			if lt != Int || rt != Int {
				return Void, diag.Typef("operands of %s must be integers", ex.Op)
			}
			return Int, nil
		default:
			if lt != rt {
				return Void, diag.Typef("operands of %s must be of the same type", ex.Op)
			}
			return Bool, nil
		}
	case ast.CallExpr:
		sig, ok := c.funcs[ex.Name]
		if !ok {
			return Void, diag.Typef("undefined function: %s", ex.Name)
		}
		if len(ex.Args) != len(sig.params) {
			return Void, diag.Typef("wrong number of arguments in call to %s", ex.Name)
		}
		for i, arg := range ex.Args {
			t, err := c.checkExpr(arg)
			if err != nil {
				return Void, err
			}
			if t != sig.params[i] {
				return Void, diag.Typef("argument %d of %s must be %s", i+1, ex.Name, sig.params[i])
			}
		}
		return sig.ret, nil
	default:
		return Void, nil
	}
}
