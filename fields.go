package archgrid

import "github.com/TheBitDrifter/mask"

// resolveOffsets returns, for each id in ids, the byte offset of that
// component's column within an archetype carrying slot's component list.
// It assumes every id is present (callers check the signature mask
// first); a missing id resolves to offset 0, which is never read because
// the caller never gets far enough to dereference it.
func resolveOffsets(slot *archetypeSlot, ids []ComponentID) []uintptr {
	offsets := make([]uintptr, len(ids))
	for i, id := range ids {
		for j, c := range slot.components {
			if c.id == id {
				offsets[i] = slot.layout.Offset(j)
				break
			}
		}
	}
	return offsets
}

func maskOf(ids ...ComponentID) mask.Mask {
	var m mask.Mask
	for _, id := range ids {
		m.Mark(uint32(id))
	}
	return m
}
