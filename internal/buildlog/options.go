package buildlog

import (
	"fmt"
	"strings"
)

// OptionShape describes how a switch stores its value.
type OptionShape int

const (
	// ShapeFlag is a presence switch, optionally carrying an explicit true/false token.
	ShapeFlag OptionShape = iota
	// ShapeText is a single string; rebinding to a different string is a conflict.
	ShapeText
	// ShapeTextList is append-only and keeps duplicates in order.
	ShapeTextList
)

func (s OptionShape) String() string {
	switch s {
	case ShapeFlag:
		return "flag"
	case ShapeText:
		return "text"
	case ShapeTextList:
		return "list"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// OptionSpec is a single entry of an option schema.
type OptionSpec struct {
	Name  string
	Shape OptionShape

	// RequiresColon options are only matched by exact name, never by prefix.
	RequiresColon bool

	// SeparateValue options with an empty remainder take the next positional
	// token as their value ("/Fo a.obj", "-o a.o").
	SeparateValue bool
}

func flagOpt(name string) OptionSpec { return OptionSpec{Name: name, Shape: ShapeFlag} }
func textOpt(name string) OptionSpec { return OptionSpec{Name: name, Shape: ShapeText} }
func listOpt(name string) OptionSpec { return OptionSpec{Name: name, Shape: ShapeTextList} }

func (o OptionSpec) colon() OptionSpec {
	o.RequiresColon = true
	return o
}

func (o OptionSpec) separate() OptionSpec {
	o.SeparateValue = true
	return o
}

// OptionValue is a bound option value: FlagValue, TextValue or TextListValue.
type OptionValue interface {
	Shape() OptionShape
	Strings() []string
	isOptionValue()
}

// FlagValue is the value of a ShapeFlag option.
type FlagValue bool

// TextValue is the value of a ShapeText option.
type TextValue string

// TextListValue is the value of a ShapeTextList option.
type TextListValue []string

func (FlagValue) Shape() OptionShape     { return ShapeFlag }
func (TextValue) Shape() OptionShape     { return ShapeText }
func (TextListValue) Shape() OptionShape { return ShapeTextList }

func (v FlagValue) Strings() []string     { return []string{fmt.Sprintf("%t", bool(v))} }
func (v TextValue) Strings() []string     { return []string{string(v)} }
func (v TextListValue) Strings() []string { return append([]string(nil), v...) }

func (FlagValue) isOptionValue()     {}
func (TextValue) isOptionValue()     {}
func (TextListValue) isOptionValue() {}

// ParseFlag reports the truth of a flag remainder. Empty means true;
// "0", "no", "false" and "-" mean false.
func ParseFlag(remainder string) bool {
	switch strings.ToLower(remainder) {
	case "0", "no", "false", "-":
		return false
	}
	return true
}

// ConflictError is returned when an option is re-bound to a different value.
type ConflictError struct {
	Option string
	Old    string
	New    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting values for option '%s': '%s' vs '%s'", e.Option, e.Old, e.New)
}

// Options holds the bound values of one item in first-bound order.
type Options struct {
	names  []string
	values map[string]OptionValue
}

func newOptions() *Options {
	return &Options{values: make(map[string]OptionValue)}
}

// Get returns the value bound under the canonical option name.
func (o *Options) Get(name string) (OptionValue, bool) {
	v, ok := o.values[name]
	return v, ok
}

// Names returns the bound option names in the order they were first bound.
func (o *Options) Names() []string {
	return append([]string(nil), o.names...)
}

// Len returns the number of bound options.
func (o *Options) Len() int {
	return len(o.names)
}

// Flag returns the flag value and whether it was bound at all.
func (o *Options) Flag(name string) (value bool, bound bool) {
	v, ok := o.values[name].(FlagValue)
	return bool(v), ok
}

// Text returns a Text value, or "" when unbound.
func (o *Options) Text(name string) string {
	v, _ := o.values[name].(TextValue)
	return string(v)
}

// List returns a copy of a TextList value.
func (o *Options) List(name string) []string {
	v, _ := o.values[name].(TextListValue)
	return append([]string(nil), v...)
}

func (o *Options) set(name string, v OptionValue) {
	if _, ok := o.values[name]; !ok {
		o.names = append(o.names, name)
	}
	o.values[name] = v
}

// add appends value to a TextList option.
func (o *Options) add(name, value string) {
	list, _ := o.values[name].(TextListValue)
	o.set(name, append(list, value))
}

// bind stores remainder according to the option's shape.
func (o *Options) bind(spec OptionSpec, remainder string) error {
	existing, bound := o.values[spec.Name]

	switch spec.Shape {
	case ShapeFlag:
		value := FlagValue(ParseFlag(remainder))
		if bound {
			if old, ok := existing.(FlagValue); ok && old != value {
				return &ConflictError{
					Option: spec.Name,
					Old:    fmt.Sprintf("%t", bool(old)),
					New:    fmt.Sprintf("%t", bool(value)),
				}
			}
		}
		o.set(spec.Name, value)

	case ShapeText:
		if bound {
			if old, ok := existing.(TextValue); ok && string(old) != remainder {
				return &ConflictError{Option: spec.Name, Old: string(old), New: remainder}
			}
		}
		o.set(spec.Name, TextValue(remainder))

	case ShapeTextList:
		o.add(spec.Name, remainder)
	}

	return nil
}

// rewrite applies fn to every string captured by Text and TextList values.
func (o *Options) rewrite(fn func(string) string) {
	for _, name := range o.names {
		switch v := o.values[name].(type) {
		case TextValue:
			o.values[name] = TextValue(fn(string(v)))
		case TextListValue:
			out := make(TextListValue, len(v))
			for i, s := range v {
				out[i] = fn(s)
			}
			o.values[name] = out
		}
	}
}
