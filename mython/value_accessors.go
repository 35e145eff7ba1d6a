package mython

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNil() bool { return v.kind == KindNil }

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

func (v Value) Number() int32 {
	if v.kind == KindNumber {
		return v.data.(int32)
	}
	return 0
}

func (v Value) Str() string {
	if v.kind == KindString {
		return v.data.(string)
	}
	return ""
}

func (v Value) Class() *ClassDef {
	if v.kind != KindClass {
		return nil
	}
	return v.data.(*ClassDef)
}

func (v Value) Instance() *Instance {
	if v.kind != KindInstance {
		return nil
	}
	return v.data.(*Instance)
}
