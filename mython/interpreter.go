package mython

import (
	"context"
	"io"
	"os"
)

// Config controls interpreter execution bounds.
type Config struct {
	// MaxDepth bounds the method call stack. Zero selects the default.
	MaxDepth int
	// Output receives print statement text. Nil selects os.Stdout.
	Output io.Writer
}

const defaultMaxDepth = 200

// Engine compiles and executes Mython programs with deterministic limits.
type Engine struct {
	config Config
}

// NewEngine constructs an Engine with sane defaults.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.MaxDepth < 0 {
		return nil, &ConfigError{Message: "MaxDepth must not be negative"}
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = defaultMaxDepth
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	return &Engine{config: cfg}, nil
}

// MustNewEngine constructs an Engine or panics if the config is invalid.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// ConfigError reports an invalid Config passed to NewEngine.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return "mython: " + e.Message
}

// CompileError is a syntactic failure annotated with a caret code frame
// pointing at the offending source location.
type CompileError struct {
	Message   string
	CodeFrame string
}

func (e *CompileError) Error() string {
	if e.CodeFrame == "" {
		return e.Message
	}
	return e.Message + "\n" + e.CodeFrame
}

// Compile tokenizes and parses source into a runnable Script. Lexical
// failures, and failed token expectations raised through the lexer's Expect
// helpers while parsing, surface as *LexerError; the parser's own errors
// surface as *CompileError. A compiled Script never fails for syntactic
// reasons afterwards.
func (e *Engine) Compile(source string) (*Script, error) {
	lx, err := NewLexer(source)
	if err != nil {
		return nil, err
	}
	program, err := newParser(lx).ParseProgram()
	if err != nil {
		if perr, ok := err.(*parseError); ok {
			return nil, &CompileError{
				Message:   perr.Error(),
				CodeFrame: formatCodeFrame(source, perr.pos),
			}
		}
		return nil, err
	}
	return &Script{engine: e, program: program, source: source}, nil
}

// Execute compiles and runs source in one step, writing program output to the
// engine's configured sink.
func (e *Engine) Execute(ctx context.Context, source string) error {
	script, err := e.Compile(source)
	if err != nil {
		return err
	}
	return script.Run(ctx)
}

// Script is a compiled program bound to the Engine that produced it. A Script
// is immutable and safe to run repeatedly; each run gets fresh state.
type Script struct {
	engine  *Engine
	program *Program
	source  string
}

// Run executes the script, writing print output to the engine's configured
// sink. Evaluation failures return a *RuntimeError; context cancellation
// returns the context's error.
func (s *Script) Run(ctx context.Context) error {
	return s.RunWithOutput(ctx, s.engine.config.Output)
}

// RunWithOutput executes the script with output redirected to out for this
// run only.
func (s *Script) RunWithOutput(ctx context.Context, out io.Writer) error {
	exec := &Execution{
		script:   s,
		ctx:      ctx,
		out:      out,
		maxDepth: s.engine.config.MaxDepth,
	}
	_, _, err := exec.evalStatements(s.program.Statements, newClosure())
	return err
}
