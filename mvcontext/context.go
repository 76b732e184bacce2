// Package mvcontext implements multi-valued contexts of Formal Concept
// Analysis: a table of objects described by several attributes, each
// attribute owning a PatternStructure that maps object sets to descriptions
// and back.
package mvcontext

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/mikulatomas/FCApy/pkg/errors"
)

// Context is a multi-valued context. It is immutable after construction
// except for its free-text description, so it can be shared between
// goroutines as long as SetDescription is not called concurrently.
type Context struct {
	objectNames    []string
	attributeNames []string
	objectIndex    map[string]int
	psIndex        map[string]int

	patternStructures []PatternStructure
	description       string
}

type config struct {
	objectNames    []string
	attributeNames []string
	description    string
}

// Option configures New.
type Option func(*config)

// WithObjectNames names the objects. Defaults to "0".."n-1".
func WithObjectNames(names ...string) Option {
	return func(c *config) {
		c.objectNames = slices.Clone(names)
	}
}

// WithAttributeNames names the attributes. Defaults to "0".."m-1".
func WithAttributeNames(names ...string) Option {
	return func(c *config) {
		c.attributeNames = slices.Clone(names)
	}
}

// WithDescription sets the human readable description of the context.
func WithDescription(text string) Option {
	return func(c *config) {
		c.description = text
	}
}

// New builds a context from an objects × attributes matrix. types must
// declare a pattern structure kind for every attribute name and nothing else.
func New(data mat.Matrix, types PatternTypes, opts ...Option) (*Context, error) {
	if data == nil {
		return nil, errors.NewModelError("mvcontext.New", "empty data", errors.ErrEmptyData)
	}
	r, c := data.Dims()
	columns := make([][]float64, c)
	for j := range columns {
		columns[j] = mat.Col(nil, j, data)
	}
	return build(r, columns, types, opts)
}

// NewFromRows builds a context from row-major data. All rows must have the
// same length.
func NewFromRows(rows [][]float64, types PatternTypes, opts ...Option) (*Context, error) {
	if len(rows) == 0 {
		return nil, errors.NewModelError("mvcontext.NewFromRows", "empty data", errors.ErrEmptyData)
	}
	m := len(rows[0])
	columns := make([][]float64, m)
	for j := range columns {
		columns[j] = make([]float64, len(rows))
	}
	for i, row := range rows {
		if len(row) != m {
			return nil, errors.NewDimensionError("mvcontext.NewFromRows", m, len(row), 1)
		}
		for j, v := range row {
			columns[j][i] = v
		}
	}
	return build(len(rows), columns, types, opts)
}

func build(n int, columns [][]float64, types PatternTypes, opts []Option) (*Context, error) {
	if n == 0 {
		return nil, errors.NewModelError("mvcontext.New", "empty data", errors.ErrEmptyData)
	}
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	objectNames, err := resolveNames("object_names", cfg.objectNames, n)
	if err != nil {
		return nil, err
	}
	attributeNames, err := resolveNames("attribute_names", cfg.attributeNames, len(columns))
	if err != nil {
		return nil, err
	}

	ctors, err := types.resolve(attributeNames)
	if err != nil {
		return nil, err
	}

	ctx := &Context{
		objectNames:       objectNames,
		attributeNames:    attributeNames,
		objectIndex:       indexOf(objectNames),
		psIndex:           indexOf(attributeNames),
		patternStructures: make([]PatternStructure, len(columns)),
		description:       cfg.description,
	}
	for j, ctor := range ctors {
		ps, err := ctor(attributeNames[j], columns[j])
		if err != nil {
			return nil, errors.Wrapf(err, "attribute %q", attributeNames[j])
		}
		ctx.patternStructures[j] = ps
	}
	return ctx, nil
}

func resolveNames(param string, names []string, want int) ([]string, error) {
	if names == nil {
		out := make([]string, want)
		for i := range out {
			out[i] = strconv.Itoa(i)
		}
		return out, nil
	}
	if len(names) != want {
		axis := 0
		if param == "attribute_names" {
			axis = 1
		}
		return nil, errors.NewDimensionError("mvcontext.New: "+param, want, len(names), axis)
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return nil, errors.NewValidationError(param, "names must be unique", name)
		}
		seen[name] = true
	}
	return names, nil
}

func indexOf(names []string) map[string]int {
	idx := make(map[string]int, len(names))
	for i, name := range names {
		idx[name] = i
	}
	return idx
}

// NObjects returns the number of objects.
func (c *Context) NObjects() int { return len(c.objectNames) }

// NAttributes returns the number of attributes.
func (c *Context) NAttributes() int { return len(c.attributeNames) }

// ObjectNames returns a copy of the object names.
func (c *Context) ObjectNames() []string { return slices.Clone(c.objectNames) }

// AttributeNames returns a copy of the attribute names.
func (c *Context) AttributeNames() []string { return slices.Clone(c.attributeNames) }

// PatternStructures returns the pattern structures in attribute order.
func (c *Context) PatternStructures() []PatternStructure {
	return slices.Clone(c.patternStructures)
}

// PatternStructure returns the pattern structure of the named attribute.
func (c *Context) PatternStructure(attribute string) (PatternStructure, bool) {
	i, ok := c.psIndex[attribute]
	if !ok {
		return nil, false
	}
	return c.patternStructures[i], true
}

// Description returns the human readable description of the context.
func (c *Context) Description() string { return c.description }

// SetDescription replaces the human readable description.
func (c *Context) SetDescription(text string) { c.description = text }

// ExtensionI returns the ascending indices of objects satisfying every
// description, keyed by pattern structure index. With no descriptions every
// object qualifies.
func (c *Context) ExtensionI(descriptions map[int]Description) ([]int, error) {
	extent := make([]int, c.NObjects())
	for i := range extent {
		extent[i] = i
	}

	for _, psI := range slices.Sorted(maps.Keys(descriptions)) {
		if psI < 0 || psI >= len(c.patternStructures) {
			return nil, errors.NewValidationError("descriptions", "pattern structure index out of range", psI)
		}
		ext, err := c.patternStructures[psI].ExtensionI(descriptions[psI])
		if err != nil {
			return nil, err
		}
		extent = intersectSorted(extent, ext)
	}
	return extent, nil
}

// IntentionI computes the description of every pattern structure over the
// given objects, keyed by pattern structure index.
func (c *Context) IntentionI(indices []int) (map[int]Description, error) {
	out := make(map[int]Description, len(c.patternStructures))
	for psI, ps := range c.patternStructures {
		d, err := ps.IntentionI(indices)
		if err != nil {
			return nil, err
		}
		out[psI] = d
	}
	return out, nil
}

// Extension returns the sorted names of objects satisfying every given
// description. Unknown attribute names are rejected.
func (c *Context) Extension(descriptions Descriptions) ([]string, error) {
	byIndex := make(map[int]Description, len(descriptions))
	for name, d := range descriptions {
		psI, ok := c.psIndex[name]
		if !ok {
			return nil, errors.NewValidationError("descriptions", "unknown attribute", name)
		}
		byIndex[psI] = d
	}

	extent, err := c.ExtensionI(byIndex)
	if err != nil {
		return nil, err
	}
	return c.names(extent), nil
}

// Intention returns the description of every attribute over the named
// objects. Unknown object names are rejected.
func (c *Context) Intention(objects []string) (Descriptions, error) {
	indices, err := c.ObjectIndices(objects)
	if err != nil {
		return nil, err
	}
	byIndex, err := c.IntentionI(indices)
	if err != nil {
		return nil, err
	}

	out := make(Descriptions, len(byIndex))
	for psI, d := range byIndex {
		out[c.attributeNames[psI]] = d
	}
	return out, nil
}

// ObjectIndices resolves object names to ascending, duplicate-free indices.
func (c *Context) ObjectIndices(objects []string) ([]int, error) {
	indices := make([]int, 0, len(objects))
	for _, name := range objects {
		i, ok := c.objectIndex[name]
		if !ok {
			return nil, errors.NewValidationError("objects", "unknown object", name)
		}
		indices = append(indices, i)
	}
	slices.Sort(indices)
	return slices.Compact(indices), nil
}

func (c *Context) names(indices []int) []string {
	out := make([]string, len(indices))
	for k, i := range indices {
		out[k] = c.objectNames[i]
	}
	return out
}

// Equal compares pattern structures pairwise. Contexts with different object
// or attribute names can not be compared and yield a ContextMismatchError.
func (c *Context) Equal(other *Context) (bool, error) {
	if !slices.Equal(c.objectNames, other.objectNames) {
		return false, errors.NewContextMismatchError("object_names")
	}
	if !slices.Equal(c.attributeNames, other.attributeNames) {
		return false, errors.NewContextMismatchError("attribute_names")
	}
	for i, ps := range c.patternStructures {
		if !ps.Equal(other.patternStructures[i]) {
			return false, nil
		}
	}
	return true, nil
}

func (c *Context) String() string {
	return fmt.Sprintf("MultiValuedContext (%d objects, %d attributes)", c.NObjects(), c.NAttributes())
}

// intersectSorted intersects two ascending, duplicate-free slices.
func intersectSorted(a, b []int) []int {
	out := make([]int, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}
