package archgrid

import "github.com/TheBitDrifter/mask"

// pageView is one page (or, for order-group traversal, a sub-run of
// consecutive rows within a page) to scan, together with the column
// offsets resolved for that page's archetype.
type pageView struct {
	page     *archetypeDataPage
	offsets  []uintptr
	startRow int
	rowCount int
}

// componentQueryCore implements the archetype/page/row scan shared by
// every ComponentQueryN: it enumerates every archetype whose signature
// contains the required components, then walks each matching page's rows
// in archetype order with no particular entity order otherwise
// guaranteed.
type componentQueryCore struct {
	store   *Store
	ids     []ComponentID
	reqMask mask.Mask

	initialized bool
	views       []pageView
	viewIndex   int
	row         int

	hasTagFilter bool
	tagFilter    TagID

	locked  bool
	lockBit uint32
}

func newComponentQueryCore(s *Store, ids []ComponentID) componentQueryCore {
	return componentQueryCore{store: s, ids: ids, reqMask: maskOf(ids...)}
}

// init locks the store (deferring structural mutations until the query
// releases it, on exhaustion or an explicit Close) and builds the set of
// pages to scan.
func (c *componentQueryCore) init() {
	c.initialized = true
	c.lockBit = c.store.lock()
	c.locked = true
	c.views = c.views[:0]
	for _, slotIdx := range c.store.archetypes.live() {
		slot := c.store.archetypes.slotAt(slotIdx)
		if !slot.sig.ContainsAll(c.reqMask) {
			continue
		}
		offsets := resolveOffsets(slot, c.ids)
		for _, pageIdx := range slot.pages {
			page := c.store.archetypes.page(pageIdx)
			if page.rowCount() == 0 {
				continue
			}
			c.views = append(c.views, pageView{page: page, offsets: offsets, startRow: 0, rowCount: page.rowCount()})
		}
	}
	c.viewIndex = 0
	c.row = -1
}

// next advances to the next row passing the tag filter (if any),
// returning false once every view is exhausted.
func (c *componentQueryCore) next() bool {
	for {
		if c.viewIndex >= len(c.views) {
			c.release()
			return false
		}
		v := &c.views[c.viewIndex]
		c.row++
		if c.row >= v.rowCount {
			c.viewIndex++
			c.row = -1
			continue
		}
		if c.hasTagFilter {
			id := v.page.entityIDs[v.startRow+c.row]
			if !c.store.tags.has(c.tagFilter, id) {
				continue
			}
		}
		return true
	}
}

// release unlocks the store, if this query still holds a lock. Safe to
// call more than once.
func (c *componentQueryCore) release() {
	if !c.locked {
		return
	}
	c.locked = false
	c.store.unlock(c.lockBit)
}

func (c *componentQueryCore) currentView() *pageView { return &c.views[c.viewIndex] }

func (c *componentQueryCore) currentEntity() Entity {
	v := c.currentView()
	id := v.page.entityIDs[v.startRow+c.row]
	version := c.store.entities.records[id].version
	return Entity{ID: id, Version: version}
}

// Len returns the total number of rows across every matched view,
// ignoring any tag filter (an upper bound on the number of Next calls
// that will return true).
func (c *componentQueryCore) len() int {
	n := 0
	for _, v := range c.views {
		n += v.rowCount
	}
	return n
}
