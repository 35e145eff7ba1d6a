package mython

// Method is a named body with ordered formal parameter names. Bodies are
// built once by the parser and immutable afterwards.
type Method struct {
	Name   string
	Params []string
	Body   []Statement
	Pos    Position
}

// ClassDef holds a class's name, its ordered method table, and an optional
// parent. The parent pointer is always a non-owning back-edge: classes are
// declared before their subclasses and outlive them.
type ClassDef struct {
	Name    string
	Methods []*Method
	Parent  *ClassDef

	byName map[string]*Method
}

// NewClassDef indexes methods by name. A duplicate method name keeps the
// last occurrence, as if the earlier definition had been reassigned.
func NewClassDef(name string, methods []*Method, parent *ClassDef) *ClassDef {
	byName := make(map[string]*Method, len(methods))
	for _, m := range methods {
		byName[m.Name] = m
	}
	return &ClassDef{Name: name, Methods: methods, Parent: parent, byName: byName}
}

// GetMethod resolves name against this class, then the parent chain. Own
// methods shadow parent methods; the parent is searched only on miss.
func (c *ClassDef) GetMethod(name string) *Method {
	if m, ok := c.byName[name]; ok {
		return m
	}
	if c.Parent != nil {
		return c.Parent.GetMethod(name)
	}
	return nil
}

// Instance pairs a class reference with the instance's own field closure.
// Fields are not declared on the class; they appear in the closure on first
// assignment.
type Instance struct {
	Class  *ClassDef
	Fields *Closure
}

func newInstance(class *ClassDef) *Instance {
	return &Instance{Class: class, Fields: newClosure()}
}

// HasMethod reports whether name resolves anywhere in the class chain with
// exactly argc formal parameters. Resolution happens by name first, so a
// same-name method with a different arity hides a parent method entirely.
func (inst *Instance) HasMethod(name string, argc int) bool {
	m := inst.Class.GetMethod(name)
	return m != nil && len(m.Params) == argc
}
