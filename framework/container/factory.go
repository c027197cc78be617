package container

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	errorType    = reflect.TypeFor[error]()
	resolverType = reflect.TypeFor[Resolver]()
)

// constructor is a validated constructor function for one target type.
//
// Constructors have the shape func(deps...) T or func(deps...) (T, error).
// A parameter of type Resolver receives the in-flight resolution instead of
// being looked up.
type constructor struct {
	fn  reflect.Value
	typ reflect.Type
}

func newConstructor(target reflect.Type, fn any) (constructor, error) {
	if fn == nil {
		return constructor{}, invalid("nil constructor for %s", target)
	}
	val := reflect.ValueOf(fn)
	typ := val.Type()

	if typ.Kind() != reflect.Func {
		return constructor{}, invalid("constructor for %s must be a function, got %s", target, typ)
	}
	if typ.NumOut() == 0 || typ.NumOut() > 2 {
		return constructor{}, invalid("constructor for %s must return (T) or (T, error)", target)
	}
	if typ.NumOut() == 2 && !typ.Out(1).Implements(errorType) {
		return constructor{}, invalid("second return value of %s constructor must implement error", target)
	}
	if !typ.Out(0).AssignableTo(target) {
		return constructor{}, invalid("constructor returns %s, not assignable to %s", typ.Out(0), target)
	}
	if typ.IsVariadic() {
		return constructor{}, invalid("variadic constructor for %s", target)
	}
	return constructor{fn: val, typ: typ}, nil
}

func newConstructors(target reflect.Type, fns []any) ([]constructor, error) {
	out := make([]constructor, 0, len(fns))
	for _, fn := range fns {
		ctor, err := newConstructor(target, fn)
		if err != nil {
			return nil, err
		}
		out = append(out, ctor)
	}
	return out, nil
}

// ── Plain strategy ────────────────────────────────────────────────────────────

// construct builds target with the first constructor, resolving every
// parameter. Later constructors are never consulted: the declared order is
// the selection rule. Without constructors it falls back to zero
// construction.
func (s *session) construct(target reflect.Type, ctors []constructor) (any, error) {
	if len(ctors) == 0 {
		return zeroConstruct(target)
	}

	ctor := ctors[0]
	args := make([]reflect.Value, ctor.typ.NumIn())
	for i := range args {
		v, err := s.argument(ctor.typ.In(i))
		if err != nil {
			return nil, fmt.Errorf("constructing %s: %w", target, err)
		}
		args[i] = v
	}
	return call(target, ctor, args, nil)
}

// ── Parameterized strategy ────────────────────────────────────────────────────

// constructWith tries constructors in order. Each parameter takes the first
// supplied value assignable to it, else a resolved dependency. A constructor
// runs only when every parameter is filled; a parameter whose type is not
// registered sends the search to the next constructor. Other resolution
// failures abort.
func (s *session) constructWith(target reflect.Type, ctors []constructor, params []any) (any, error) {
	if len(ctors) == 0 {
		return zeroConstruct(target)
	}

	for _, ctor := range ctors {
		args, ok, err := s.match(ctor, params)
		if err != nil {
			return nil, fmt.Errorf("constructing %s: %w", target, err)
		}
		if !ok {
			continue
		}
		return call(target, ctor, args, params)
	}
	return nil, &ConstructionError{Type: target, Params: params}
}

func (s *session) match(ctor constructor, params []any) ([]reflect.Value, bool, error) {
	args := make([]reflect.Value, ctor.typ.NumIn())
	for i := range args {
		pt := ctor.typ.In(i)

		if v, ok := supplied(params, pt); ok {
			args[i] = v
			continue
		}

		v, err := s.argument(pt)
		if err != nil {
			var nre *NotRegisteredError
			if errors.As(err, &nre) && nre.Type == pt {
				return nil, false, nil
			}
			return nil, false, err
		}
		args[i] = v
	}
	return args, true, nil
}

// supplied returns the first non-nil value in params assignable to t.
func supplied(params []any, t reflect.Type) (reflect.Value, bool) {
	for _, p := range params {
		if isNil(p) {
			continue
		}
		if reflect.TypeOf(p).AssignableTo(t) {
			return reflect.ValueOf(p), true
		}
	}
	return reflect.Value{}, false
}

// ── Shared helpers ────────────────────────────────────────────────────────────

// argument resolves one untagged parameter.
func (s *session) argument(t reflect.Type) (reflect.Value, error) {
	if t == resolverType {
		return reflect.ValueOf(s), nil
	}
	v, err := s.resolve(t, "")
	if err != nil {
		return reflect.Value{}, err
	}
	return valueFor(v, t)
}

// valueFor converts a resolved instance into a value assignable to t.
func valueFor(v any, t reflect.Type) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return reflect.Zero(t), nil
	}
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("%w: %s is not assignable to %s", ErrConstruction, rv.Type(), t)
	}
	return rv, nil
}

func call(target reflect.Type, ctor constructor, args []reflect.Value, params []any) (any, error) {
	out := ctor.fn.Call(args)
	if len(out) == 2 && !isNil(out[1].Interface()) {
		return nil, &ConstructionError{Type: target, Params: params, Cause: out[1].Interface().(error)}
	}
	return out[0].Interface(), nil
}

// zeroConstruct builds target without a constructor: a fresh zero struct
// behind a pointer, or a zero struct value.
func zeroConstruct(target reflect.Type) (any, error) {
	switch {
	case target.Kind() == reflect.Pointer && target.Elem().Kind() == reflect.Struct:
		return reflect.New(target.Elem()).Interface(), nil
	case target.Kind() == reflect.Struct:
		return reflect.New(target).Elem().Interface(), nil
	}
	return nil, &ConstructionError{
		Type:  target,
		Cause: fmt.Errorf("%s has no constructor and no zero construction", target.Kind()),
	}
}
