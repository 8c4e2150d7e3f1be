package archgrid

import "github.com/TheBitDrifter/mask"

// archetypeSlot is a container-internal record for one archetype: its
// component set, the pages currently bound to it, and the layout shared
// by all of those pages. freed marks a slot whose last page has drained
// and which now sits on freeSlots, waiting to be reused by the next
// distinct signature.
type archetypeSlot struct {
	components []ComponentType
	sig        mask.Mask
	layout     *ArchetypeLayout
	pages      []int
	freed      bool
}

// archetypesContainer owns every archetype slot and every backing page for
// a Store. Drained pages go onto freePages and are recycled by whichever
// archetype next needs one; an archetype slot is freed the same way once
// its last page drains, and its index is recycled by slotFor for the next
// new signature (see freeSlots).
type archetypesContainer struct {
	pageSize int

	slots     []archetypeSlot
	byMask    map[mask.Mask]int
	freeSlots []int

	pages     []*archetypeDataPage
	freePages []int

	events StructuralEvents
}

func newArchetypesContainer(pageSize int, events StructuralEvents) *archetypesContainer {
	return &archetypesContainer{
		pageSize: pageSize,
		byMask:   make(map[mask.Mask]int),
		events:   events,
	}
}

// slotFor returns the slot index for the given component set, creating it
// (and computing its layout) the first time this exact signature is seen,
// reusing a freed slot index over growing c.slots when one is available.
func (c *archetypesContainer) slotFor(components []ComponentType, sig mask.Mask) (int, error) {
	if idx, ok := c.byMask[sig]; ok {
		return idx, nil
	}
	layout, err := newArchetypeLayout(components, c.pageSize)
	if err != nil {
		return 0, err
	}
	slot := archetypeSlot{components: components, sig: sig, layout: layout}

	var idx int
	if n := len(c.freeSlots); n > 0 {
		idx = c.freeSlots[n-1]
		c.freeSlots = c.freeSlots[:n-1]
		c.slots[idx] = slot
	} else {
		idx = len(c.slots)
		c.slots = append(c.slots, slot)
	}
	c.byMask[sig] = idx
	if c.events.OnArchetypeCreated != nil {
		c.events.OnArchetypeCreated(components)
	}
	return idx, nil
}

// slot returns the archetype slot for the given archetype, registering it
// if not already present.
func (c *archetypesContainer) slot(arch Archetype) (int, error) {
	return c.slotFor(arch.components, arch.sig)
}

// addEntity places id into an archetype, using an existing page with a
// free row if one exists, otherwise reserving a new page. It returns the
// slot/page/row the entity now occupies.
func (c *archetypesContainer) addEntity(id uint32, arch Archetype) (slotIdx, pageIdx, row int, err error) {
	slotIdx, err = c.slot(arch)
	if err != nil {
		return 0, 0, 0, err
	}
	slot := &c.slots[slotIdx]
	for i := len(slot.pages) - 1; i >= 0; i-- {
		p := slot.pages[i]
		if c.pages[p].hasFreeRow() {
			return slotIdx, p, c.pages[p].addEntityRow(id), nil
		}
	}
	pageIdx = c.reservePage(slotIdx)
	return slotIdx, pageIdx, c.pages[pageIdx].addEntityRow(id), nil
}

func (c *archetypesContainer) reservePage(slotIdx int) int {
	var pageIdx int
	if n := len(c.freePages); n > 0 {
		pageIdx = c.freePages[n-1]
		c.freePages = c.freePages[:n-1]
	} else {
		pageIdx = len(c.pages)
		c.pages = append(c.pages, newArchetypeDataPage(c.pageSize))
	}
	slot := &c.slots[slotIdx]
	c.pages[pageIdx].bind(slot.layout)
	slot.pages = append(slot.pages, pageIdx)
	if c.events.OnPageReserved != nil {
		c.events.OnPageReserved(slot.components)
	}
	return pageIdx
}

// swapRemoveEntity removes the row at (slotIdx, pageIdx, row), releasing
// the page (and, if it was the archetype's last page, the slot) once it
// empties.
func (c *archetypesContainer) swapRemoveEntity(slotIdx, pageIdx, row int) (movedID uint32, moved bool) {
	slot := &c.slots[slotIdx]
	page := c.pages[pageIdx]
	movedID, moved = page.swapRemoveRow(row, slot.components, slot.layout.columnOffsets)
	if page.rowCount() == 0 {
		c.releasePage(slotIdx, pageIdx)
	}
	return movedID, moved
}

func (c *archetypesContainer) releasePage(slotIdx, pageIdx int) {
	slot := &c.slots[slotIdx]
	for i, p := range slot.pages {
		if p == pageIdx {
			slot.pages = append(slot.pages[:i], slot.pages[i+1:]...)
			break
		}
	}
	c.freePages = append(c.freePages, pageIdx)

	if len(slot.pages) == 0 {
		delete(c.byMask, slot.sig)
		slot.freed = true
		slot.components = nil
		slot.layout = nil
		c.freeSlots = append(c.freeSlots, slotIdx)
	}
}

func (c *archetypesContainer) page(idx int) *archetypeDataPage { return c.pages[idx] }
func (c *archetypesContainer) slotAt(idx int) *archetypeSlot   { return &c.slots[idx] }

// live returns the index of every currently-occupied archetype slot, for
// full archetype scans by queries. A slot whose last page drained is
// freed (see releasePage) and excluded until some entity's archetype
// reoccupies its index.
func (c *archetypesContainer) live() []int {
	out := make([]int, 0, len(c.slots))
	for i := range c.slots {
		if !c.slots[i].freed {
			out = append(out, i)
		}
	}
	return out
}
