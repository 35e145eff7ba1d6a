package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mython-lang/mython/mython"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:], false)
	case "check":
		return runCommand(args[2:], true)
	case "repl":
		return runREPL()
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string, checkOnly bool) error {
	name := "run"
	if checkOnly {
		name = "check"
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	maxDepth := fs.Int("max-depth", 0, "maximum method call depth (0 for default)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) != 1 {
		return fmt.Errorf("mython %s: script path required", name)
	}
	input, err := os.ReadFile(remaining[0])
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	engine, err := mython.NewEngine(mython.Config{MaxDepth: *maxDepth})
	if err != nil {
		return err
	}
	script, err := engine.Compile(string(input))
	if err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}
	if checkOnly {
		return nil
	}
	if err := script.Run(context.Background()); err != nil {
		return fmt.Errorf("execution failed:\n%w", err)
	}
	return nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [arguments]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run <script>    compile and execute a script")
	fmt.Fprintln(os.Stderr, "  check <script>  compile a script without executing")
	fmt.Fprintln(os.Stderr, "  repl            start an interactive session")
	fmt.Fprintln(os.Stderr, "  help            show this message")
	fmt.Fprintln(os.Stderr, "Flags for run and check:")
	fmt.Fprintln(os.Stderr, "  -max-depth <n>")
	fmt.Fprintln(os.Stderr, "    maximum method call depth (0 for default)")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
