package mython

import (
	"fmt"
	"strconv"
)

const (
	initMethod = "__init__"
	strMethod  = "__str__"
	eqMethod   = "__eq__"
	ltMethod   = "__lt__"
	addMethod  = "__add__"
)

// truthy projects any value to a boolean: nil is false, bools are
// themselves, numbers compare against zero, strings against emptiness.
// Classes and instances are always false; no truthiness dunder is honored.
func truthy(v Value) bool {
	switch v.Kind() {
	case KindBool:
		return v.Bool()
	case KindNumber:
		return v.Number() != 0
	case KindString:
		return v.Str() != ""
	default:
		return false
	}
}

// stringifyValue renders a value the way print writes it. Instances with a
// zero-argument __str__ delegate to it; others render an identity marker.
func (exec *Execution) stringifyValue(v Value, pos Position) (string, error) {
	switch v.Kind() {
	case KindNil:
		return "None", nil
	case KindBool:
		if v.Bool() {
			return "True", nil
		}
		return "False", nil
	case KindNumber:
		return strconv.FormatInt(int64(v.Number()), 10), nil
	case KindString:
		return v.Str(), nil
	case KindClass:
		return "Class " + v.Class().Name, nil
	case KindInstance:
		inst := v.Instance()
		if inst.HasMethod(strMethod, 0) {
			res, err := exec.callMethod(inst, strMethod, nil, pos)
			if err != nil {
				return "", err
			}
			return exec.stringifyValue(res, pos)
		}
		return fmt.Sprintf("<%s object at %p>", inst.Class.Name, inst), nil
	}
	return "", exec.errorAt(pos, "cannot print %s value", v.Kind())
}

// equalValues compares same-kind primitives by payload, delegates to a unary
// __eq__ on a left-hand instance, and treats two nil values as equal.
func (exec *Execution) equalValues(left, right Value, pos Position) (bool, error) {
	switch {
	case left.Kind() == KindBool && right.Kind() == KindBool:
		return left.Bool() == right.Bool(), nil
	case left.Kind() == KindNumber && right.Kind() == KindNumber:
		return left.Number() == right.Number(), nil
	case left.Kind() == KindString && right.Kind() == KindString:
		return left.Str() == right.Str(), nil
	}
	if inst := left.Instance(); inst != nil && inst.HasMethod(eqMethod, 1) {
		res, err := exec.callMethod(inst, eqMethod, []Value{right}, pos)
		if err != nil {
			return false, err
		}
		if res.Kind() != KindBool {
			return false, exec.errorAt(pos, "%s must return True or False", eqMethod)
		}
		return res.Bool(), nil
	}
	if left.IsNil() && right.IsNil() {
		return true, nil
	}
	return false, exec.errorAt(pos, "cannot compare objects for equality")
}

// lessValues mirrors equalValues: primitive ordering for matching kinds
// (False sorts before True, strings lexicographically), __lt__ delegation on
// a left-hand instance, failure otherwise.
func (exec *Execution) lessValues(left, right Value, pos Position) (bool, error) {
	switch {
	case left.Kind() == KindBool && right.Kind() == KindBool:
		return !left.Bool() && right.Bool(), nil
	case left.Kind() == KindNumber && right.Kind() == KindNumber:
		return left.Number() < right.Number(), nil
	case left.Kind() == KindString && right.Kind() == KindString:
		return left.Str() < right.Str(), nil
	}
	if inst := left.Instance(); inst != nil && inst.HasMethod(ltMethod, 1) {
		res, err := exec.callMethod(inst, ltMethod, []Value{right}, pos)
		if err != nil {
			return false, err
		}
		if res.Kind() != KindBool {
			return false, exec.errorAt(pos, "%s must return True or False", ltMethod)
		}
		return res.Bool(), nil
	}
	return false, exec.errorAt(pos, "cannot compare objects for less")
}

func (exec *Execution) notEqualValues(left, right Value, pos Position) (bool, error) {
	eq, err := exec.equalValues(left, right, pos)
	return !eq, err
}

func (exec *Execution) greaterValues(left, right Value, pos Position) (bool, error) {
	less, err := exec.lessValues(left, right, pos)
	if err != nil || less {
		return false, err
	}
	eq, err := exec.equalValues(left, right, pos)
	return !eq, err
}

func (exec *Execution) lessOrEqualValues(left, right Value, pos Position) (bool, error) {
	greater, err := exec.greaterValues(left, right, pos)
	return !greater, err
}

func (exec *Execution) greaterOrEqualValues(left, right Value, pos Position) (bool, error) {
	less, err := exec.lessValues(left, right, pos)
	return !less, err
}
