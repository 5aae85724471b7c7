package object

import (
	"fmt"
	"strconv"
	"strings"
)

// PayloadKind identifies which intrinsic payload variant an Instance holds.
// A non-intrinsic (user-defined class) Instance always carries PayloadNone.
type PayloadKind uint8

const (
	PayloadNone PayloadKind = iota
	PayloadString
	PayloadInt
	PayloadFloat
)

// Instance is a runtime value of some Type. Non-intrinsic instances are
// pure containers of sub-instances; intrinsic instances additionally carry
// one of {string, integer, decimal} in the fields below.
type Instance struct {
	base
	Type         *Type
	SubInstances []*Instance

	PayloadKind PayloadKind
	StringValue string
	IntValue    int64
	FloatValue  float64
}

// NewInstance creates an empty instance of typ under name, with no payload
// and no sub-instances.
func NewInstance(typ *Type, name string) *Instance {
	inst := &Instance{Type: typ}
	inst.name = name
	return inst
}

func (i *Instance) Kind() Kind { return KindInstance }

// GetMember returns the first sub-instance with the given name.
func (i *Instance) GetMember(name string) (*Instance, bool) {
	for _, c := range i.SubInstances {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// AddSubInstance appends an owned sub-instance.
func (i *Instance) AddSubInstance(sub *Instance) {
	i.SubInstances = append(i.SubInstances, sub)
}

// ClearSubInstances drops all owned sub-instances.
func (i *Instance) ClearSubInstances() {
	i.SubInstances = nil
}

// GetFunction looks up a member function/operator by name on the
// instance's type (e.g. "operator+"). Name is expected to already carry
// the OperatorNamePrefix when looking up an operator.
func (i *Instance) GetFunction(name string) (*Operator, bool) {
	if i.Type == nil {
		return nil, false
	}
	n, ok := i.Type.GetByName(name, KindFunction)
	if !ok {
		return nil, false
	}
	op, ok := n.(*Operator)
	return op, ok
}

// AssignFrom copies another instance's type, payload and sub-instance
// references into i, per the scope-merge rule of spec §4.6: merging two
// INSTANCE children assigns the right-hand instance's full state into the
// left-hand one.
func (i *Instance) AssignFrom(other *Instance) {
	i.Type = other.Type
	i.PayloadKind = other.PayloadKind
	i.StringValue = other.StringValue
	i.IntValue = other.IntValue
	i.FloatValue = other.FloatValue
	i.SubInstances = other.SubInstances
}

// Clone deep-copies the instance: sub-instances are cloned recursively,
// payload is copied by value.
func (i *Instance) Clone(name string) Node {
	clone := NewInstance(i.Type, name)
	clone.SetSpan(i.Span())
	clone.PayloadKind = i.PayloadKind
	clone.StringValue = i.StringValue
	clone.IntValue = i.IntValue
	clone.FloatValue = i.FloatValue
	clone.SubInstances = make([]*Instance, 0, len(i.SubInstances))
	for _, sub := range i.SubInstances {
		clone.SubInstances = append(clone.SubInstances, sub.Clone(sub.Name()).(*Instance))
	}
	return clone
}

// ErrObjectPayloadUnsupported is returned by SetFromString on an `object`
// typed instance: object payload parsing is an explicitly unimplemented
// non-goal (spec §9 open question, original source: ConfTypeObject/
// ConfTypeExpr never win literal typing, and ConfInstanceObject::
// SetFromString asserts WIP).
var ErrObjectPayloadUnsupported = fmt.Errorf("object: SetFromString is not supported for intrinsic type %q", TypeNameObject)

// SetFromString parses text into the instance's intrinsic payload,
// dispatching on the instance's type name. Payload parsing per intrinsic:
// string strips the outer quotes, int parses a signed decimal integer,
// float parses a decimal number; object is a non-goal and always errors.
func (i *Instance) SetFromString(text string) error {
	if i.Type == nil {
		return fmt.Errorf("object: cannot SetFromString on an instance with no type")
	}
	switch i.Type.Name() {
	case TypeNameString:
		i.PayloadKind = PayloadString
		i.StringValue = unquote(text)
		return nil
	case TypeNameInt:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return fmt.Errorf("object: parse int literal %q: %w", text, err)
		}
		i.PayloadKind = PayloadInt
		i.IntValue = v
		return nil
	case TypeNameFloat:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fmt.Errorf("object: parse float literal %q: %w", text, err)
		}
		i.PayloadKind = PayloadFloat
		i.FloatValue = v
		return nil
	case TypeNameObject:
		return ErrObjectPayloadUnsupported
	default:
		return fmt.Errorf("object: %q has no intrinsic payload to set from string", i.Type.Name())
	}
}

// unquote strips a single layer of surrounding '"' quote characters, if
// present, without interpreting escape sequences (none are specified).
func unquote(text string) string {
	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		return text[1 : len(text)-1]
	}
	return text
}

// Text renders the instance's payload in canonical form, matching the
// round-trip property of spec §8: quotes stripped for string, base-10 for
// int, standard decimal for float.
func (i *Instance) Text() string {
	switch i.PayloadKind {
	case PayloadString:
		return i.StringValue
	case PayloadInt:
		return strconv.FormatInt(i.IntValue, 10)
	case PayloadFloat:
		return strconv.FormatFloat(i.FloatValue, 'g', -1, 64)
	default:
		return ""
	}
}
