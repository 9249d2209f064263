package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/implang/imp"
	"github.com/implang/imp/ast"
	"github.com/implang/imp/interp"
	"github.com/implang/imp/typecheck"
)

const (
	historyFile = ".imp_history"
	promptMain  = "==> "
)

const replHelp = `REPL commands:
  :env     Show all variables
  :help    Show this help
  :quit    Exit the REPL
`

// cmdRepl keeps one interpreter and one checker alive across lines. Type
// errors are reported but do not block execution; the check is advisory.
func cmdRepl() int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
	}
	saveHistory := func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}

	in := interp.New()
	checker := typecheck.New()
	fmt.Println("imp REPL. Ctrl+D or :quit exits, :help for commands.")

	for {
		input, err := ln.Prompt(promptMain)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err == io.EOF {
			fmt.Println()
			saveHistory()
			return 0
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			saveHistory()
			return 1
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		ln.AppendHistory(input)

		switch input {
		case ":quit":
			saveHistory()
			return 0
		case ":help":
			fmt.Print(replHelp)
			continue
		case ":env":
			for _, name := range in.Vars() {
				v, _ := in.Lookup(name)
				fmt.Printf("%s = %d\n", name, v)
			}
			continue
		}

		program, err := imp.Parse(input)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if err := checker.Check(program); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		runLine(in, program)
	}
}

// runLine executes each statement; expression statements print their value.
func runLine(in *interp.Interpreter, program []ast.Stmt) {
	for _, s := range program {
		if es, ok := s.(ast.ExprStmt); ok {
			v, err := in.EvalExpr(es.X)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}
			fmt.Println(v)
			continue
		}
		if err := in.Run([]ast.Stmt{s}); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
	}
}
