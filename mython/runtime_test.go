package mython

import (
	"io"
	"strings"
	"testing"
)

func testExecution() *Execution {
	return &Execution{out: io.Discard, maxDepth: defaultMaxDepth}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		val  Value
		want bool
	}{
		{NewNil(), false},
		{NewBool(true), true},
		{NewBool(false), false},
		{NewNumber(0), false},
		{NewNumber(1), true},
		{NewNumber(-5), true},
		{NewString(""), false},
		{NewString("x"), true},
		{NewClass(NewClassDef("A", nil, nil)), false},
		{NewInstanceValue(newInstance(NewClassDef("A", nil, nil))), false},
	}
	for _, tc := range cases {
		if got := truthy(tc.val); got != tc.want {
			t.Fatalf("truthy(%v %v) = %v, want %v", tc.val.Kind(), tc.val, got, tc.want)
		}
	}
}

func TestStringifyPrimitives(t *testing.T) {
	exec := testExecution()
	cases := []struct {
		val  Value
		want string
	}{
		{NewNil(), "None"},
		{NewBool(true), "True"},
		{NewBool(false), "False"},
		{NewNumber(42), "42"},
		{NewNumber(-7), "-7"},
		{NewString("hi"), "hi"},
		{NewClass(NewClassDef("Point", nil, nil)), "Class Point"},
	}
	for _, tc := range cases {
		got, err := exec.stringifyValue(tc.val, Position{})
		if err != nil {
			t.Fatalf("stringify failed: %v", err)
		}
		if got != tc.want {
			t.Fatalf("stringify = %q, want %q", got, tc.want)
		}
	}
}

func TestStringifyInstanceWithoutStr(t *testing.T) {
	exec := testExecution()
	inst := newInstance(NewClassDef("Box", nil, nil))
	got, err := exec.stringifyValue(NewInstanceValue(inst), Position{})
	if err != nil {
		t.Fatalf("stringify failed: %v", err)
	}
	if !strings.HasPrefix(got, "<Box object at ") || !strings.HasSuffix(got, ">") {
		t.Fatalf("unexpected instance rendering: %q", got)
	}
}

func TestEqualPrimitives(t *testing.T) {
	exec := testExecution()
	cases := []struct {
		left, right Value
		want        bool
	}{
		{NewNumber(1), NewNumber(1), true},
		{NewNumber(1), NewNumber(2), false},
		{NewString("a"), NewString("a"), true},
		{NewString("a"), NewString("b"), false},
		{NewBool(true), NewBool(true), true},
		{NewBool(true), NewBool(false), false},
		{NewNil(), NewNil(), true},
	}
	for _, tc := range cases {
		got, err := exec.equalValues(tc.left, tc.right, Position{})
		if err != nil {
			t.Fatalf("equal failed: %v", err)
		}
		if got != tc.want {
			t.Fatalf("equal(%v, %v) = %v, want %v", tc.left, tc.right, got, tc.want)
		}
	}
}

func TestEqualMixedKindsFails(t *testing.T) {
	exec := testExecution()
	if _, err := exec.equalValues(NewNumber(1), NewString("1"), Position{}); err == nil {
		t.Fatalf("expected comparison error")
	} else if !strings.Contains(err.Error(), "cannot compare objects for equality") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLessPrimitives(t *testing.T) {
	exec := testExecution()
	cases := []struct {
		left, right Value
		want        bool
	}{
		{NewNumber(1), NewNumber(2), true},
		{NewNumber(2), NewNumber(1), false},
		{NewNumber(1), NewNumber(1), false},
		{NewString("abc"), NewString("abd"), true},
		{NewString("b"), NewString("a"), false},
		{NewBool(false), NewBool(true), true},
		{NewBool(true), NewBool(false), false},
		{NewBool(true), NewBool(true), false},
	}
	for _, tc := range cases {
		got, err := exec.lessValues(tc.left, tc.right, Position{})
		if err != nil {
			t.Fatalf("less failed: %v", err)
		}
		if got != tc.want {
			t.Fatalf("less(%v, %v) = %v, want %v", tc.left, tc.right, got, tc.want)
		}
	}
}

func TestLessNilFails(t *testing.T) {
	exec := testExecution()
	if _, err := exec.lessValues(NewNil(), NewNil(), Position{}); err == nil {
		t.Fatalf("expected comparison error")
	} else if !strings.Contains(err.Error(), "cannot compare objects for less") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDerivedComparisons(t *testing.T) {
	exec := testExecution()
	two, three := NewNumber(2), NewNumber(3)

	ne, err := exec.notEqualValues(two, three, Position{})
	if err != nil || !ne {
		t.Fatalf("2 != 3 should hold: %v %v", ne, err)
	}
	gt, err := exec.greaterValues(three, two, Position{})
	if err != nil || !gt {
		t.Fatalf("3 > 2 should hold: %v %v", gt, err)
	}
	gt, err = exec.greaterValues(two, two, Position{})
	if err != nil || gt {
		t.Fatalf("2 > 2 should not hold: %v %v", gt, err)
	}
	le, err := exec.lessOrEqualValues(two, two, Position{})
	if err != nil || !le {
		t.Fatalf("2 <= 2 should hold: %v %v", le, err)
	}
	ge, err := exec.greaterOrEqualValues(two, three, Position{})
	if err != nil || ge {
		t.Fatalf("2 >= 3 should not hold: %v %v", ge, err)
	}
}

func TestValueAccessorsOnWrongKind(t *testing.T) {
	n := NewNumber(7)
	if n.Str() != "" || n.Class() != nil || n.Instance() != nil || n.Bool() {
		t.Fatalf("wrong-kind accessors should return zero values")
	}
	s := NewString("x")
	if s.Number() != 0 || s.IsNil() {
		t.Fatalf("wrong-kind accessors should return zero values")
	}
}

func TestMethodResolutionOrder(t *testing.T) {
	parentM := &Method{Name: "m", Params: []string{"a"}}
	parent := NewClassDef("P", []*Method{parentM}, nil)
	childM := &Method{Name: "m"}
	child := NewClassDef("C", []*Method{childM}, parent)

	if got := child.GetMethod("m"); got != childM {
		t.Fatalf("child method should shadow parent")
	}
	inst := newInstance(child)
	if inst.HasMethod("m", 0) != true {
		t.Fatalf("child m/0 should resolve")
	}
	// Name resolution wins before arity: the child's zero-argument m hides
	// the parent's one-argument m entirely.
	if inst.HasMethod("m", 1) {
		t.Fatalf("parent m/1 should be hidden by child m/0")
	}
}

func TestDuplicateMethodLastWins(t *testing.T) {
	first := &Method{Name: "m"}
	second := &Method{Name: "m"}
	def := NewClassDef("A", []*Method{first, second}, nil)
	if def.GetMethod("m") != second {
		t.Fatalf("last duplicate should win")
	}
}

func TestClosureDefineOverwrites(t *testing.T) {
	c := newClosure()
	c.Define("x", NewNumber(1))
	c.Define("x", NewNumber(2))
	val, ok := c.Get("x")
	if !ok || val.Number() != 2 {
		t.Fatalf("unexpected closure value: %v %v", val, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatalf("missing name should not resolve")
	}
}
