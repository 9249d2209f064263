package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/implang/imp"
	"github.com/implang/imp/ast"
	"github.com/implang/imp/interp"
)

// The canonical demo program; used when no file argument is given.
const demoProgram = `
let x = 10 ;
let y = 0 ;

if (x > 5) {
    y = 1 ;
} else {
    y = 2 ;
}

while (y < 5) {
    y = y + 1 ;
}

do {
    y = y - 1 ;
} while (y > 0) ;

fn add(a, b) {
    return a + b ;
}

let z = add(x, y) ;
`

const helpText = `usage: imp <command> [arguments]

Commands:
  run [-nocheck] [file]   execute a program and print the final variables
  tokens [file]           print the token sequence
  ast [file]              print the parsed syntax tree
  check [file]            run the static type checker only
  repl                    interactive session
  play [file]             full-screen phase inspector

With no file argument the built-in demo program is used.
`

func main() {
	if len(os.Args) < 2 {
		os.Exit(cmdRun(nil))
	}
	switch os.Args[1] {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "tokens":
		os.Exit(cmdTokens(os.Args[2:]))
	case "ast":
		os.Exit(cmdAST(os.Args[2:]))
	case "check":
		os.Exit(cmdCheck(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl())
	case "play":
		os.Exit(cmdPlay(os.Args[2:]))
	case "help", "-h", "--help":
		fmt.Print(helpText)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		fmt.Fprint(os.Stderr, helpText)
		os.Exit(2)
	}
}

func loadSource(args []string) (string, error) {
	if len(args) == 0 {
		return demoProgram, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(data), nil
}

func fail(err error) int {
	fmt.Fprintln(os.Stderr, err)
	return 1
}

func cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	nocheck := fs.Bool("nocheck", false, "skip the advisory type check")
	fs.Parse(args)

	src, err := loadSource(fs.Args())
	if err != nil {
		return fail(err)
	}
	var in *interp.Interpreter
	if *nocheck {
		in, err = imp.Interpret(src)
	} else {
		in, err = imp.Run(src)
	}
	if err != nil {
		return fail(err)
	}
	for _, name := range in.Vars() {
		v, _ := in.Lookup(name)
		fmt.Printf("%s = %d\n", name, v)
	}
	return 0
}

func cmdTokens(args []string) int {
	src, err := loadSource(args)
	if err != nil {
		return fail(err)
	}
	toks, err := imp.Tokenize(src)
	if err != nil {
		return fail(err)
	}
	for _, t := range toks {
		fmt.Println(t)
	}
	return 0
}

func cmdAST(args []string) int {
	src, err := loadSource(args)
	if err != nil {
		return fail(err)
	}
	program, err := imp.Parse(src)
	if err != nil {
		return fail(err)
	}
	fmt.Print(ast.Dump(program))
	return 0
}

func cmdCheck(args []string) int {
	src, err := loadSource(args)
	if err != nil {
		return fail(err)
	}
	if err := imp.Check(src); err != nil {
		return fail(err)
	}
	fmt.Println("ok")
	return 0
}
