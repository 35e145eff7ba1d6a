package mython

// evalMethodCall resolves and invokes a method on an instance receiver. A
// non-instance receiver, or an instance with no method of matching name and
// arity, yields nil without raising an error.
func (exec *Execution) evalMethodCall(e *MethodCallExpr, closure *Closure) (Value, error) {
	obj, err := exec.evalExpression(e.Object, closure)
	if err != nil {
		return NewNil(), err
	}
	inst := obj.Instance()
	if inst == nil || !inst.HasMethod(e.Method, len(e.Args)) {
		return NewNil(), nil
	}
	args, err := exec.evalArgs(e.Args, closure)
	if err != nil {
		return NewNil(), err
	}
	return exec.callMethod(inst, e.Method, args, e.Pos())
}

// evalNewInstance constructs an instance and runs __init__ when one of
// matching arity exists. Arguments are evaluated only in that case, and the
// initializer's result is discarded.
func (exec *Execution) evalNewInstance(e *NewInstanceExpr, closure *Closure) (Value, error) {
	inst := newInstance(e.Class)
	if inst.HasMethod(initMethod, len(e.Args)) {
		args, err := exec.evalArgs(e.Args, closure)
		if err != nil {
			return NewNil(), err
		}
		if _, err := exec.callMethod(inst, initMethod, args, e.Pos()); err != nil {
			return NewNil(), err
		}
	}
	return NewInstanceValue(inst), nil
}

func (exec *Execution) evalArgs(exprs []Expression, closure *Closure) ([]Value, error) {
	args := make([]Value, len(exprs))
	for i, expr := range exprs {
		val, err := exec.evalExpression(expr, closure)
		if err != nil {
			return nil, err
		}
		args[i] = val
	}
	return args, nil
}

// callMethod invokes a method in a fresh closure binding self and the formal
// parameters by position. The result is the value carried by a return
// statement, or nil when the body runs to completion.
func (exec *Execution) callMethod(inst *Instance, name string, args []Value, pos Position) (Value, error) {
	m := inst.Class.GetMethod(name)
	if m == nil || len(m.Params) != len(args) {
		return NewNil(), exec.errorAt(pos, "%s has no method %s/%d", inst.Class.Name, name, len(args))
	}
	if err := exec.pushFrame(inst.Class.Name+"."+name, pos); err != nil {
		return NewNil(), err
	}
	defer exec.popFrame()

	locals := newClosure()
	locals.Define("self", NewInstanceValue(inst))
	for i, param := range m.Params {
		locals.Define(param, args[i])
	}

	val, returned, err := exec.evalStatements(m.Body, locals)
	if err != nil {
		return NewNil(), err
	}
	if returned {
		return val, nil
	}
	return NewNil(), nil
}

func (exec *Execution) pushFrame(method string, pos Position) error {
	if len(exec.callStack) >= exec.maxDepth {
		return exec.errorAt(pos, "maximum call depth %d exceeded", exec.maxDepth)
	}
	exec.callStack = append(exec.callStack, callFrame{Method: method, Pos: pos})
	return nil
}

func (exec *Execution) popFrame() {
	exec.callStack = exec.callStack[:len(exec.callStack)-1]
}
