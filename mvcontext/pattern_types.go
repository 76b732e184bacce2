package mvcontext

import (
	"sort"

	"github.com/mikulatomas/FCApy/pkg/errors"
)

// Kind names a pattern structure variant.
type Kind string

const (
	// KindInterval selects IntervalPS.
	KindInterval Kind = "interval"
)

// Constructor builds a pattern structure from one attribute column.
type Constructor func(name string, column []float64) (PatternStructure, error)

var constructors = map[Kind]Constructor{
	KindInterval: func(name string, column []float64) (PatternStructure, error) {
		return NewIntervalPS(name, column)
	},
}

// LookupKind returns the constructor registered for kind.
func LookupKind(kind Kind) (Constructor, error) {
	c, ok := constructors[kind]
	if !ok {
		return nil, errors.NewValidationError("pattern_types", "unknown pattern structure kind", string(kind))
	}
	return c, nil
}

// PatternTypes declares the pattern structure kind of every attribute.
// Each entry maps exactly one attribute name.
type PatternTypes map[string]Kind

// Declare assigns kind to every name.
func Declare(kind Kind, names ...string) PatternTypes {
	return PatternTypes{}.Add(kind, names...)
}

// Add assigns kind to every name and returns pt.
func (pt PatternTypes) Add(kind Kind, names ...string) PatternTypes {
	for _, name := range names {
		pt[name] = kind
	}
	return pt
}

// resolve checks that pt covers attributeNames exactly and returns one
// constructor per attribute, in attribute order.
func (pt PatternTypes) resolve(attributeNames []string) ([]Constructor, error) {
	known := make(map[string]bool, len(attributeNames))
	for _, name := range attributeNames {
		known[name] = true
	}

	var missing, extra []string
	for _, name := range attributeNames {
		if _, ok := pt[name]; !ok {
			missing = append(missing, name)
		}
	}
	for name := range pt {
		if !known[name] {
			extra = append(extra, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewValidationError("pattern_types", "pattern structures are undefined for attributes", missing)
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return nil, errors.NewValidationError("pattern_types", "pattern structures are declared for unknown attributes", extra)
	}

	out := make([]Constructor, len(attributeNames))
	for i, name := range attributeNames {
		c, err := LookupKind(pt[name])
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
