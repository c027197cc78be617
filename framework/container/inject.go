package container

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// MemberKind is the kind of an injectable member.
type MemberKind int

const (
	MethodMember MemberKind = iota
	FieldMember
	PropertyMember
)

func (k MemberKind) String() string {
	switch k {
	case MethodMember:
		return "method"
	case FieldMember:
		return "field"
	case PropertyMember:
		return "property"
	default:
		return "unknown"
	}
}

// Member is one injectable slot of an object. Build members with Method,
// Field, Property and ReadOnly.
type Member struct {
	Kind MemberKind
	Name string
	Tag  string

	typ    reflect.Type // field / property type
	set    func(v any)  // nil for read-only properties
	method any          // func value for methods
}

// Injectable is implemented by objects that want members filled by the
// container. InjectionPoints is called once per injection and should
// return members bound to the receiver.
//
//	func (p *Player) InjectionPoints() []container.Member {
//	    return []container.Member{
//	        container.Field("Score", &p.Score),
//	        container.Field("Weapon", &p.Weapon, "primary"),
//	        container.Method("Construct", p.Construct),
//	    }
//	}
type Injectable interface {
	InjectionPoints() []Member
}

// Field declares a field filled with the instance resolved for T (and tag).
func Field[T any](name string, dst *T, tag ...string) Member {
	return Member{
		Kind: FieldMember,
		Name: name,
		Tag:  tagOf(tag),
		typ:  reflect.TypeFor[T](),
		set:  func(v any) { *dst = v.(T) },
	}
}

// Property declares a writable property; set receives the resolved value.
func Property[T any](name string, set func(T), tag ...string) Member {
	m := Member{
		Kind: PropertyMember,
		Name: name,
		Tag:  tagOf(tag),
		typ:  reflect.TypeFor[T](),
	}
	if set != nil {
		m.set = func(v any) { set(v.(T)) }
	}
	return m
}

// ReadOnly declares a property without a setter. It is skipped.
func ReadOnly[T any](name string, tag ...string) Member {
	return Property[T](name, nil, tag...)
}

// Method declares an injection method. fn must be a function (usually a
// method value bound to the receiver) returning nothing or an error; each
// parameter is resolved by type, untagged.
func Method(name string, fn any) Member {
	return Member{Kind: MethodMember, Name: name, method: fn}
}

// Writable reports whether a property member has a setter. Fields and
// methods are always writable.
func (m Member) Writable() bool {
	return m.Kind == MethodMember || m.set != nil
}

var memberOrder = [...]MemberKind{MethodMember, FieldMember, PropertyMember}

// injectInto fills methods, then fields, then properties, each in
// declaration order. Objects that are not Injectable are left untouched.
func (s *session) injectInto(obj any) error {
	inj, ok := obj.(Injectable)
	if !ok || isNil(obj) {
		return nil
	}

	points := inj.InjectionPoints()
	for _, kind := range memberOrder {
		for _, m := range points {
			if m.Kind != kind {
				continue
			}
			if err := s.injectMember(m); err != nil {
				return fmt.Errorf("injecting %s %s of %T: %w", m.Kind, m.Name, obj, err)
			}
		}
	}
	return nil
}

func (s *session) injectMember(m Member) error {
	switch m.Kind {
	case MethodMember:
		return s.invoke(m.method)
	case PropertyMember:
		if m.set == nil {
			s.c.log.Debug("read-only property skipped", zap.String("member", m.Name))
			return nil
		}
	case FieldMember:
		if m.set == nil {
			return invalid("field %s has no destination", m.Name)
		}
	default:
		return invalid("member %s has unknown kind %d", m.Name, m.Kind)
	}

	v, err := s.resolve(m.typ, m.Tag)
	if err != nil {
		return err
	}
	if _, err := valueFor(v, m.typ); err != nil {
		return err
	}
	m.set(v)
	return nil
}

// invoke calls an injection method once with resolved arguments.
func (s *session) invoke(fn any) error {
	val := reflect.ValueOf(fn)
	if !val.IsValid() || val.Kind() != reflect.Func || val.IsNil() {
		return invalid("injection method must be a function, got %T", fn)
	}
	typ := val.Type()
	if typ.IsVariadic() {
		return invalid("variadic injection method %s", typ)
	}

	args := make([]reflect.Value, typ.NumIn())
	for i := range args {
		v, err := s.argument(typ.In(i))
		if err != nil {
			return err
		}
		args[i] = v
	}

	out := val.Call(args)
	if n := len(out); n > 0 && typ.Out(n-1).Implements(errorType) {
		if err, _ := out[n-1].Interface().(error); err != nil {
			return err
		}
	}
	return nil
}
