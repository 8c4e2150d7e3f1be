package archgrid

import (
	"sort"

	"github.com/TheBitDrifter/mask"
)

// Archetype is the immutable descriptor of an exact component-type set: the
// sorted list of ComponentTypes it carries and the mask.Mask signature
// derived from their ids. Two archetypes built from the same component set
// compare equal by Signature regardless of the order components were added
// to the builder.
type Archetype struct {
	components []ComponentType
	sig        mask.Mask
}

// Components returns the archetype's component list, sorted by id.
func (a Archetype) Components() []ComponentType { return a.components }

// Signature returns the bit signature used for archetype lookup and query
// evaluation.
func (a Archetype) Signature() mask.Mask { return a.sig }

// Has reports whether the archetype carries the given component or tag id.
func (a Archetype) Has(id ComponentID) bool {
	for _, c := range a.components {
		if c.id == id {
			return true
		}
	}
	return false
}

// findComponentIndex returns the position of id within the sorted
// component list, or -1.
func (a Archetype) findComponentIndex(id ComponentID) int {
	lo, hi := 0, len(a.components)
	for lo < hi {
		mid := (lo + hi) / 2
		if a.components[mid].id < id {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(a.components) && a.components[lo].id == id {
		return lo
	}
	return -1
}

// ArchetypeBuilder accumulates a component set before producing an
// Archetype. Built archetypes are immutable; the builder itself is mutable
// scratch space and is safe to discard after Build.
type ArchetypeBuilder struct {
	set map[ComponentID]ComponentType
}

// NewArchetypeBuilder starts an empty archetype builder.
func NewArchetypeBuilder() *ArchetypeBuilder {
	return &ArchetypeBuilder{set: make(map[ComponentID]ComponentType)}
}

// Include adds a previously registered component/tag to the set being
// built. Including the same id twice is a no-op.
func (b *ArchetypeBuilder) Include(ct ComponentType) *ArchetypeBuilder {
	b.set[ct.id] = ct
	return b
}

// Exclude removes a component/tag from the set being built, if present.
func (b *ArchetypeBuilder) Exclude(ct ComponentType) *ArchetypeBuilder {
	delete(b.set, ct.id)
	return b
}

// IncludeAll adds every component in types.
func (b *ArchetypeBuilder) IncludeAll(types ...ComponentType) *ArchetypeBuilder {
	for _, ct := range types {
		b.Include(ct)
	}
	return b
}

// IncludeArchetype merges another archetype's component set into the one
// being built.
func (b *ArchetypeBuilder) IncludeArchetype(a Archetype) *ArchetypeBuilder {
	for _, c := range a.components {
		b.Include(c)
	}
	return b
}

// IncludeComponent registers (if needed) and includes T in the set being
// built.
func IncludeComponent[T any](b *ArchetypeBuilder) *ArchetypeBuilder {
	return b.Include(RegisterComponent[T]())
}

// Build produces the immutable Archetype: component ids sorted ascending,
// with the mask.Mask signature derived from them.
func (b *ArchetypeBuilder) Build() Archetype {
	components := make([]ComponentType, 0, len(b.set))
	for _, c := range b.set {
		components = append(components, c)
	}
	sort.Slice(components, func(i, j int) bool { return components[i].id < components[j].id })
	var sig mask.Mask
	for _, c := range components {
		sig.Mark(uint32(c.id))
	}
	return Archetype{components: components, sig: sig}
}
