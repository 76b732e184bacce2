package mvcontext

// PatternStructure implements the Galois connection between object indices
// and descriptions for a single attribute.
//
// IntentionI returns the least description covering the values of the given
// objects, or NoDescription when no index is given. ExtensionI returns the
// ascending, duplicate-free indices of objects satisfying a description;
// NoDescription yields an empty result.
//
// DescriptionToGenerators returns the two one-sided relaxations of a
// description; GeneratorsToDescription aggregates a sequence of generators
// back into a description.
type PatternStructure interface {
	Name() string
	Len() int

	IntentionI(indices []int) (Description, error)
	ExtensionI(d Description) ([]int, error)

	DescriptionToGenerators(d Description) ([2]Description, error)
	GeneratorsToDescription(generators []Description) (Description, error)

	// Equal reports whether other has the same variant, name and data.
	Equal(other PatternStructure) bool
	String() string
}
