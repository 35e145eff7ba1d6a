package mython

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Execution carries the mutable state of a single program run: the output
// sink, the method call stack, and the recursion bound.
type Execution struct {
	script    *Script
	ctx       context.Context
	out       io.Writer
	callStack []callFrame
	maxDepth  int
}

type callFrame struct {
	Method string
	Pos    Position
}

// StackFrame is one entry of a RuntimeError's call trace.
type StackFrame struct {
	Method string
	Pos    Position
}

// RuntimeError is the user-visible evaluation failure: unknown variables,
// unsupported operands, division by zero, incomparable values. It renders
// with a source code frame and the method call trace.
type RuntimeError struct {
	Message   string
	CodeFrame string
	Frames    []StackFrame
}

const (
	runtimeErrorFrameHead = 6
	runtimeErrorFrameTail = 6
)

func (re *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(re.Message)
	if re.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(re.CodeFrame)
	}
	renderFrame := func(frame StackFrame) {
		if frame.Pos.Line > 0 && frame.Pos.Column > 0 {
			fmt.Fprintf(&b, "\n  at %s (%d:%d)", frame.Method, frame.Pos.Line, frame.Pos.Column)
		} else if frame.Pos.Line > 0 {
			fmt.Fprintf(&b, "\n  at %s (line %d)", frame.Method, frame.Pos.Line)
		} else {
			fmt.Fprintf(&b, "\n  at %s", frame.Method)
		}
	}

	if len(re.Frames) <= runtimeErrorFrameHead+runtimeErrorFrameTail {
		for _, frame := range re.Frames {
			renderFrame(frame)
		}
		return b.String()
	}

	for _, frame := range re.Frames[:runtimeErrorFrameHead] {
		renderFrame(frame)
	}
	omitted := len(re.Frames) - (runtimeErrorFrameHead + runtimeErrorFrameTail)
	fmt.Fprintf(&b, "\n  ... %d frames omitted ...", omitted)
	for _, frame := range re.Frames[len(re.Frames)-runtimeErrorFrameTail:] {
		renderFrame(frame)
	}

	return b.String()
}

func (exec *Execution) errorAt(pos Position, format string, args ...any) error {
	return exec.newRuntimeError(fmt.Sprintf(format, args...), pos)
}

func (exec *Execution) newRuntimeError(message string, pos Position) error {
	frames := make([]StackFrame, 0, len(exec.callStack)+1)
	if len(exec.callStack) > 0 {
		current := exec.callStack[len(exec.callStack)-1]
		frames = append(frames, StackFrame{Method: current.Method, Pos: pos})
		for i := len(exec.callStack) - 1; i >= 0; i-- {
			cf := exec.callStack[i]
			frames = append(frames, StackFrame(cf))
		}
	} else {
		frames = append(frames, StackFrame{Method: "<program>", Pos: pos})
	}
	codeFrame := ""
	if exec.script != nil {
		codeFrame = formatCodeFrame(exec.script.source, pos)
	}
	return &RuntimeError{Message: message, CodeFrame: codeFrame, Frames: frames}
}

func (exec *Execution) wrapError(err error, pos Position) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*RuntimeError); ok {
		return err
	}
	return exec.newRuntimeError(err.Error(), pos)
}

func (exec *Execution) step() error {
	if exec.ctx != nil {
		select {
		case <-exec.ctx.Done():
			return exec.ctx.Err()
		default:
		}
	}
	return nil
}

// evalStatements runs a statement block. A true returned flag means a return
// statement fired inside the block; it propagates until a method body
// consumes it.
func (exec *Execution) evalStatements(stmts []Statement, closure *Closure) (Value, bool, error) {
	result := NewNil()
	for _, stmt := range stmts {
		if err := exec.step(); err != nil {
			return NewNil(), false, err
		}
		val, returned, err := exec.evalStatement(stmt, closure)
		if err != nil {
			return NewNil(), false, err
		}
		if returned {
			return val, true, nil
		}
		result = val
	}
	return result, false, nil
}

func (exec *Execution) evalStatement(stmt Statement, closure *Closure) (Value, bool, error) {
	switch s := stmt.(type) {
	case *ExprStmt:
		val, err := exec.evalExpression(s.Expr, closure)
		return val, false, err
	case *AssignStmt:
		val, err := exec.evalExpression(s.Value, closure)
		if err != nil {
			return NewNil(), false, err
		}
		closure.Define(s.Name, val)
		return val, false, nil
	case *FieldAssignStmt:
		obj, err := exec.evalExpression(s.Object, closure)
		if err != nil {
			return NewNil(), false, err
		}
		inst := obj.Instance()
		if inst == nil {
			return NewNil(), false, exec.errorAt(s.Pos(), "cannot assign field %s on %s value", s.Field, obj.Kind())
		}
		val, err := exec.evalExpression(s.Value, closure)
		if err != nil {
			return NewNil(), false, err
		}
		inst.Fields.Define(s.Field, val)
		return val, false, nil
	case *PrintStmt:
		return NewNil(), false, exec.evalPrint(s, closure)
	case *ReturnStmt:
		val, err := exec.evalExpression(s.Value, closure)
		return val, true, err
	case *IfStmt:
		cond, err := exec.evalExpression(s.Condition, closure)
		if err != nil {
			return NewNil(), false, err
		}
		if truthy(cond) {
			return exec.evalStatements(s.Consequent, closure)
		}
		if len(s.Alternate) > 0 {
			return exec.evalStatements(s.Alternate, closure)
		}
		return NewNil(), false, nil
	case *ClassDefStmt:
		val := NewClass(s.Class)
		closure.Define(s.Class.Name, val)
		return val, false, nil
	default:
		return NewNil(), false, exec.errorAt(stmt.Pos(), "unsupported statement")
	}
}

func (exec *Execution) evalPrint(s *PrintStmt, closure *Closure) error {
	parts := make([]string, len(s.Args))
	for i, arg := range s.Args {
		val, err := exec.evalExpression(arg, closure)
		if err != nil {
			return err
		}
		text, err := exec.stringifyValue(val, arg.Pos())
		if err != nil {
			return err
		}
		parts[i] = text
	}
	if _, err := io.WriteString(exec.out, strings.Join(parts, " ")+"\n"); err != nil {
		return exec.wrapError(err, s.Pos())
	}
	return nil
}

func (exec *Execution) evalExpression(expr Expression, closure *Closure) (Value, error) {
	switch e := expr.(type) {
	case *NumberLiteral:
		return NewNumber(e.Value), nil
	case *StringLiteral:
		return NewString(e.Value), nil
	case *BoolLiteral:
		return NewBool(e.Value), nil
	case *NoneLiteral:
		return NewNil(), nil
	case *VariableExpr:
		return exec.lookupVariable(e, closure)
	case *StringifyExpr:
		val, err := exec.evalExpression(e.Arg, closure)
		if err != nil {
			return NewNil(), err
		}
		text, err := exec.stringifyValue(val, e.Pos())
		if err != nil {
			return NewNil(), err
		}
		return NewString(text), nil
	case *MethodCallExpr:
		return exec.evalMethodCall(e, closure)
	case *NewInstanceExpr:
		return exec.evalNewInstance(e, closure)
	case *BinaryExpr:
		return exec.evalBinaryExpr(e, closure)
	case *NotExpr:
		val, err := exec.evalExpression(e.Arg, closure)
		if err != nil {
			return NewNil(), err
		}
		if val.IsNil() {
			return NewNil(), exec.errorAt(e.Pos(), "'not' is not implemented for this operand")
		}
		return NewBool(!truthy(val)), nil
	default:
		return NewNil(), exec.errorAt(expr.Pos(), "unsupported expression")
	}
}

// lookupVariable resolves a simple name in the current closure, or walks a
// dotted path through instance field closures.
func (exec *Execution) lookupVariable(e *VariableExpr, closure *Closure) (Value, error) {
	val, ok := closure.Get(e.Names[0])
	if !ok {
		return NewNil(), exec.errorAt(e.Pos(), "unknown variable %s", e.Names[0])
	}
	for _, name := range e.Names[1:] {
		inst := val.Instance()
		if inst == nil {
			return NewNil(), exec.errorAt(e.Pos(), "%s is not an instance", name)
		}
		field, ok := inst.Fields.Get(name)
		if !ok {
			return NewNil(), exec.errorAt(e.Pos(), "unknown variable %s", name)
		}
		val = field
	}
	return val, nil
}
