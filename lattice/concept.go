package lattice

import (
	"maps"
	"slices"

	"github.com/mikulatomas/FCApy/mvcontext"
)

// Concept is a (extent, intent) pair of a multi-valued context. The extent
// holds ascending object indices; the intent holds one description per
// attribute. Concepts are immutable once they are part of a Lattice: the
// builder's measures are set at construction and predictors keep their own
// statistics next to the lattice.
type Concept struct {
	extent      []int
	extentNames []string
	intentI     map[int]mvcontext.Description
	intent      mvcontext.Descriptions
	measures    map[string]interface{}
}

// NewConcept copies its arguments into a new Concept.
func NewConcept(extent []int, extentNames []string, intentI map[int]mvcontext.Description,
	intent mvcontext.Descriptions, measures map[string]interface{}) *Concept {
	if measures == nil {
		measures = map[string]interface{}{}
	}
	return &Concept{
		extent:      slices.Clone(extent),
		extentNames: slices.Clone(extentNames),
		intentI:     maps.Clone(intentI),
		intent:      maps.Clone(intent),
		measures:    maps.Clone(measures),
	}
}

// Extent returns the ascending object indices.
func (c *Concept) Extent() []int { return slices.Clone(c.extent) }

// ExtentNames returns the object names in extent order.
func (c *Concept) ExtentNames() []string { return slices.Clone(c.extentNames) }

// Intent returns the descriptions keyed by attribute name.
func (c *Concept) Intent() mvcontext.Descriptions { return maps.Clone(c.intent) }

// IntentI returns the descriptions keyed by pattern structure index.
func (c *Concept) IntentI() map[int]mvcontext.Description { return maps.Clone(c.intentI) }

// Support is the number of objects in the extent.
func (c *Concept) Support() int { return len(c.extent) }

// Measures returns a copy of the measures recorded by the builder.
func (c *Concept) Measures() map[string]interface{} { return maps.Clone(c.measures) }

// Measure returns a single builder measure.
func (c *Concept) Measure(key string) (interface{}, bool) {
	v, ok := c.measures[key]
	return v, ok
}

// LessEq reports whether the extent of c is contained in the extent of other.
func (c *Concept) LessEq(other *Concept) bool {
	if c.Support() > other.Support() {
		return false
	}
	return isSubset(c.extent, other.extent)
}

// Less is LessEq with strictly smaller support.
func (c *Concept) Less(other *Concept) bool {
	if c.Support() >= other.Support() {
		return false
	}
	return isSubset(c.extent, other.extent)
}

// Equal reports whether both concepts have the same extent.
func (c *Concept) Equal(other *Concept) bool {
	return slices.Equal(c.extent, other.extent)
}

// ToMap renders the concept as a nested map: "Ext" and "Int" blocks, "Supp",
// followed by the builder measures.
func (c *Concept) ToMap() map[string]interface{} {
	intentNames := make([]string, 0, len(c.intent))
	for name := range c.intent {
		intentNames = append(intentNames, name)
	}
	slices.Sort(intentNames)
	intent := make(map[string]string, len(c.intent))
	for name, d := range c.intent {
		intent[name] = d.String()
	}

	out := map[string]interface{}{
		"Ext": map[string]interface{}{
			"Inds":  c.Extent(),
			"Names": c.ExtentNames(),
			"Count": len(c.extent),
		},
		"Int": map[string]interface{}{
			"Names":        intentNames,
			"Descriptions": intent,
			"Count":        len(c.intent),
		},
		"Supp": c.Support(),
	}
	for k, v := range c.measures {
		out[k] = v
	}
	return out
}

// isSubset reports whether ascending a is contained in ascending b.
func isSubset(a, b []int) bool {
	j := 0
	for _, x := range a {
		for j < len(b) && b[j] < x {
			j++
		}
		if j == len(b) || b[j] != x {
			return false
		}
		j++
	}
	return true
}
