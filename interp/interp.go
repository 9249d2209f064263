package interp

import (
	"maps"
	"sort"

	"github.com/implang/imp/ast"
	"github.com/implang/imp/diag"
)

// maxCallDepth bounds recursion so runaway programs fail with a reported
// RuntimeError instead of exhausting the host stack.
const maxCallDepth = 256

type function struct {
	params []string
	body   []ast.Stmt
}

// Interpreter walks the tree top to bottom against a flat variable map and a
// flat function table. Booleans are stored as 0/1. Functions become callable
// only once their declaration statement has executed; a textually later
// declaration does not help an earlier call site.
type Interpreter struct {
	vars  map[string]int64
	funcs map[string]function
	depth int
}

func New() *Interpreter {
	return &Interpreter{
		vars:  map[string]int64{},
		funcs: map[string]function{},
	}
}

type resultKind int

const (
	resultNone resultKind = iota
	resultReturn
)

// execResult threads return values upward through nested blocks until they
// reach a call boundary.
type execResult struct {
	kind  resultKind
	value int64
}

// Run executes the program statement by statement. A top-level return is
// accepted, its value discarded, and execution continues with the remaining
// statements.
func (in *Interpreter) Run(program []ast.Stmt) error {
	for _, s := range program {
		if _, err := in.execStmt(s); err != nil {
			return err
		}
	}
	return nil
}

// Lookup reports the current value of a variable.
func (in *Interpreter) Lookup(name string) (int64, bool) {
	v, ok := in.vars[name]
	return v, ok
}

// Snapshot returns a copy of the variable environment.
func (in *Interpreter) Snapshot() map[string]int64 {
	return maps.Clone(in.vars)
}

// Vars returns the variable names in sorted order.
func (in *Interpreter) Vars() []string {
	names := make([]string, 0, len(in.vars))
	for name := range in.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EvalExpr evaluates a single expression against the current environment.
func (in *Interpreter) EvalExpr(e ast.Expr) (int64, error) {
	return in.evalExpr(e)
}

func (in *Interpreter) execBlock(body []ast.Stmt) (execResult, error) {
	for _, s := range body {
		res, err := in.execStmt(s)
		if err != nil {
			return execResult{}, err
		}
		if res.kind != resultNone {
			return res, nil
		}
	}
	return execResult{}, nil
}

func (in *Interpreter) execStmt(s ast.Stmt) (execResult, error) {
	switch st := s.(type) {
	case ast.LetStmt:
		v, err := in.evalExpr(st.Value)
		if err != nil {
			return execResult{}, err
		}
		in.vars[st.Name] = v
		return execResult{}, nil
	case ast.AssignStmt:
		v, err := in.evalExpr(st.Value)
		if err != nil {
			return execResult{}, err
		}
		if _, ok := in.vars[st.Name]; !ok {
			return execResult{}, diag.Runtimef("undefined variable: %s", st.Name)
		}
		in.vars[st.Name] = v
		return execResult{}, nil
	case ast.ExprStmt:
		_, err := in.evalExpr(st.X)
		return execResult{}, err
	case ast.IfStmt:
		cond, err := in.evalExpr(st.Cond)
		if err != nil {
			return execResult{}, err
		}
		if cond != 0 {
			return in.execBlock(st.Then)
		}
		return in.execBlock(st.Else)
	case ast.WhileStmt:
		for {
			cond, err := in.evalExpr(st.Cond)
			if err != nil {
				return execResult{}, err
			}
			if cond == 0 {
				return execResult{}, nil
			}
			res, err := in.execBlock(st.Body)
			if err != nil {
				return execResult{}, err
			}
			if res.kind != resultNone {
				return res, nil
			}
		}
	case ast.DoWhileStmt:
		// Body runs once before the condition is tested at all.
		for {
			res, err := in.execBlock(st.Body)
			if err != nil {
				return execResult{}, err
			}
			if res.kind != resultNone {
				return res, nil
			}
			cond, err := in.evalExpr(st.Cond)
			if err != nil {
				return execResult{}, err
			}
			if cond == 0 {
				return execResult{}, nil
			}
		}
	case ast.ForStmt:
		v, err := in.evalExpr(st.Start)
		if err != nil {
			return execResult{}, err
		}
		in.vars[st.Var] = v
		for {
			cond, err := in.evalExpr(st.Cond)
			if err != nil {
				return execResult{}, err
			}
			if cond == 0 {
				return execResult{}, nil
			}
			res, err := in.execBlock(st.Body)
			if err != nil {
				return execResult{}, err
			}
			if res.kind != resultNone {
				return res, nil
			}
			// The loop variable is rebound from the step expression, not
			// incremented, and stays visible after the loop exits.
			v, err = in.evalExpr(st.Step)
			if err != nil {
				return execResult{}, err
			}
			in.vars[st.Var] = v
		}
	case ast.FnDeclStmt:
		in.funcs[st.Name] = function{params: st.Params, body: st.Body}
		return execResult{}, nil
	case ast.ReturnStmt:
		v, err := in.evalExpr(st.Value)
		if err != nil {
			return execResult{}, err
		}
		return execResult{kind: resultReturn, value: v}, nil
	default:
		return execResult{}, nil
	}
}

func (in *Interpreter) evalExpr(e ast.Expr) (int64, error) {
	switch ex := e.(type) {
	case ast.NumberLit:
		return ex.Value, nil
	case ast.BoolLit:
		if ex.Value {
			return 1, nil
		}
		return 0, nil
	case ast.VarExpr:
		v, ok := in.vars[ex.Name]
		if !ok {
			return 0, diag.Runtimef("undefined variable: %s", ex.Name)
		}
		return v, nil
	case ast.BinaryExpr:
		l, err := in.evalExpr(ex.Left)
		if err != nil {
			return 0, err
		}
		r, err := in.evalExpr(ex.Right)
		if err != nil {
			return 0, err
		}
		return evalBinary(ex.Op, l, r)
	case ast.CallExpr:
		return in.call(ex.Name, ex.Args)
	default:
		return 0, nil
	}
}

func evalBinary(op ast.BinOp, l, r int64) (int64, error) {
	switch op {
	case ast.Add:
		return l + r, nil
	case ast.Sub:
		return l - r, nil
	case ast.Mul:
		return l * r, nil
	case ast.Div:
		if r == 0 {
			return 0, diag.Runtimef("division by zero")
		}
		return l / r, nil
	case ast.Gt:
		return boolToInt(l > r), nil
	case ast.Lt:
		return boolToInt(l < r), nil
	case ast.Eq:
		return boolToInt(l == r), nil
	default:
		return boolToInt(l != r), nil
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func (in *Interpreter) call(name string, args []ast.Expr) (int64, error) {
	fn, ok := in.funcs[name]
	if !ok {
		return 0, diag.Runtimef("undefined function: %s", name)
	}
	if len(args) != len(fn.params) {
		return 0, diag.Runtimef("wrong number of arguments in call to %s", name)
	}
	if in.depth >= maxCallDepth {
		return 0, diag.Runtimef("call depth limit exceeded in %s", name)
	}

	// Arguments evaluate in the caller's environment before the callee
	// environment exists.
	vals := make([]int64, len(args))
	for i, arg := range args {
		v, err := in.evalExpr(arg)
		if err != nil {
			return 0, err
		}
		vals[i] = v
	}

	// The callee owns full copies of the environment and the function table;
	// parameters shadow caller variables of the same name. Nothing the callee
	// mutates survives the call, only the return value does.
	callee := &Interpreter{
		vars:  maps.Clone(in.vars),
		funcs: maps.Clone(in.funcs),
		depth: in.depth + 1,
	}
	for i, param := range fn.params {
		callee.vars[param] = vals[i]
	}
	res, err := callee.execBlock(fn.body)
	if err != nil {
		return 0, err
	}
	if res.kind == resultReturn {
		return res.value, nil
	}
	// No return statement executed: the call yields 0.
	return 0, nil
}
