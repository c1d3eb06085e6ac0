package transforms

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknown is returned by Lookup for names that are not registered.
var ErrUnknown = errors.New("unknown transform")

// A Transform maps a point of the complex plane to the next point of its orbit.
type Transform interface {
	Next(z complex128) complex128
}

// Func adapts an ordinary function to a Transform.
type Func func(z complex128) complex128

func (f Func) Next(z complex128) complex128 {
	return f(z)
}

var registry = map[string]Transform{
	"square":   Square{},
	"cube":     Pow{N: 3},
	"sin":      Sin{},
	"sintan":   SinTan{},
	"exp":      Exp{},
	"identity": Affine{Scale: 1},
}

// Lookup returns the registered Transform with the given name.
func Lookup(name string) (Transform, error) {
	t, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q, want one of %v", ErrUnknown, name, Names())
	}
	return t, nil
}

// Names lists the registered transforms in order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	_ Transform = Func(nil)
	_ Transform = Square{}
	_ Transform = Pow{}
	_ Transform = Affine{}
	_ Transform = Julia{}
)
