// Package lattice holds concept lattices built from multi-valued contexts,
// together with the Builder and Tracer collaborators that decision lattice
// predictors depend on.
package lattice

import (
	"fmt"
	"slices"

	"github.com/mikulatomas/FCApy/mvcontext"
	"github.com/mikulatomas/FCApy/pkg/errors"
)

// Builder enumerates the concepts of a context with the given algorithm,
// producing at most sizeCap concepts.
type Builder interface {
	Build(ctx *mvcontext.Context, algorithm string, sizeCap int) (*Lattice, error)
}

// Tracer maps every object of ctx to the minimal concepts of l that match
// it. The result has one entry per object, in object order; each entry holds
// ascending concept indices.
type Tracer interface {
	Trace(l *Lattice, ctx *mvcontext.Context) ([][]int, error)
}

// Lattice is an index-addressable, read-only sequence of concepts ordered by
// descending support.
type Lattice struct {
	algorithm      string
	attributeNames []string
	concepts       []*Concept
	truncated      bool
}

// New wraps concepts built over a context with the given attribute names.
func New(algorithm string, attributeNames []string, concepts []*Concept, truncated bool) *Lattice {
	return &Lattice{
		algorithm:      algorithm,
		attributeNames: slices.Clone(attributeNames),
		concepts:       slices.Clone(concepts),
		truncated:      truncated,
	}
}

// Len returns the number of concepts.
func (l *Lattice) Len() int {
	if l == nil {
		return 0
	}
	return len(l.concepts)
}

// Concept returns the i-th concept.
func (l *Lattice) Concept(i int) (*Concept, error) {
	if i < 0 || i >= l.Len() {
		return nil, errors.NewValidationError("concept_index", "out of range", i)
	}
	return l.concepts[i], nil
}

// Concepts returns the concepts in lattice order.
func (l *Lattice) Concepts() []*Concept {
	if l == nil {
		return nil
	}
	return slices.Clone(l.concepts)
}

// Algorithm returns the identifier of the algorithm that built l.
func (l *Lattice) Algorithm() string { return l.algorithm }

// AttributeNames returns the attribute names of the training context.
func (l *Lattice) AttributeNames() []string { return slices.Clone(l.attributeNames) }

// Truncated reports whether the builder stopped at its size cap.
func (l *Lattice) Truncated() bool { return l.truncated }

func (l *Lattice) String() string {
	return fmt.Sprintf("ConceptLattice (%d concepts, algorithm %s)", l.Len(), l.algorithm)
}
