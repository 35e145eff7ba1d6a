package mython

func NewNil() Value { return Value{kind: KindNil} }

func NewBool(b bool) Value { return Value{kind: KindBool, data: b} }

func NewNumber(n int32) Value { return Value{kind: KindNumber, data: n} }

func NewString(s string) Value { return Value{kind: KindString, data: s} }

func NewClass(c *ClassDef) Value { return Value{kind: KindClass, data: c} }

func NewInstanceValue(inst *Instance) Value { return Value{kind: KindInstance, data: inst} }
