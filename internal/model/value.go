package model

// Value is a symbolic property value. The set of variants is closed; code
// that renders values switches over all of them.
type Value interface {
	isValue()
}

// NamedColor is a palette constant such as "white".
type NamedColor struct{ Name string }

// RGBAColor is a literal color with components in [0, 1].
type RGBAColor struct{ R, G, B, A float64 }

// Font is a font constructor with family name and point size.
type Font struct {
	Name string
	Size float64
}

// Enum is a symbolic enum case, e.g. Enum{"center"} for ".center".
type Enum struct{ Case string }

// String is a quoted string literal.
type String struct{ S string }

// Int is an integer literal.
type Int struct{ N int }

// Float is a floating-point literal.
type Float struct{ F float64 }

// Bool is a boolean literal.
type Bool struct{ B bool }

// Constructor is a call like UIImage(named: "") with labelled arguments.
type Constructor struct {
	Type string
	Args []Arg
}

// Failed marks a raw value no table could map.
type Failed struct{ Raw any }

func (NamedColor) isValue()  {}
func (RGBAColor) isValue()   {}
func (Font) isValue()        {}
func (Enum) isValue()        {}
func (String) isValue()      {}
func (Int) isValue()         {}
func (Float) isValue()       {}
func (Bool) isValue()        {}
func (Constructor) isValue() {}
func (Failed) isValue()      {}

// Property is one assignment name.Key = Value.
type Property struct {
	Key   string
	Value Value
}

// Arg is one labelled call argument. An empty label means an unlabelled
// argument.
type Arg struct {
	Label string
	Value Value
}

// Call is a method call on a node that cannot be written as an assignment.
type Call struct {
	Method string
	Args   []Arg
}
