package archgrid

import "github.com/TheBitDrifter/mask"

// orderedComponentQueryCore implements the order-group traversal shared by
// every OrderedComponentQueryN: it walks a GroupID's linked list from its
// head, skipping entities that are dead or whose archetype excludes a
// required component, and groups consecutive same-page rows into one
// pageView each.
type orderedComponentQueryCore struct {
	store   *Store
	ids     []ComponentID
	reqMask mask.Mask
	group   GroupID

	initialized bool
	views       []pageView
	entities    [][]Entity // entities[i] parallels views[i]'s rows
	viewIndex   int
	row         int

	locked  bool
	lockBit uint32
}

func newOrderedComponentQueryCore(s *Store, ids []ComponentID, group GroupID) orderedComponentQueryCore {
	return orderedComponentQueryCore{store: s, ids: ids, reqMask: maskOf(ids...), group: group}
}

func (c *orderedComponentQueryCore) init() {
	c.initialized = true
	c.lockBit = c.store.lock()
	c.locked = true
	c.views = c.views[:0]
	c.entities = c.entities[:0]

	id, ok := c.store.orderGroups.head(c.group)
	for ok {
		if c.store.entities.alive.isSet(id) && c.store.hasArchetype.isSet(id) {
			slotIdx, pageIdx, row := c.store.entities.location(id)
			slot := c.store.archetypes.slotAt(slotIdx)
			if slot.sig.ContainsAll(c.reqMask) {
				page := c.store.archetypes.page(pageIdx)
				version := c.store.entities.records[id].version
				entity := Entity{ID: id, Version: version}

				if n := len(c.views); n > 0 && c.views[n-1].page == page && c.views[n-1].startRow+c.views[n-1].rowCount == row {
					c.views[n-1].rowCount++
					c.entities[n-1] = append(c.entities[n-1], entity)
				} else {
					c.views = append(c.views, pageView{
						page: page, offsets: resolveOffsets(slot, c.ids), startRow: row, rowCount: 1,
					})
					c.entities = append(c.entities, []Entity{entity})
				}
			}
		}
		id, ok = c.store.orderGroups.next(c.group, id)
	}
	c.viewIndex = 0
	c.row = -1
}

func (c *orderedComponentQueryCore) next() bool {
	for {
		if c.viewIndex >= len(c.views) {
			c.release()
			return false
		}
		c.row++
		if c.row >= c.views[c.viewIndex].rowCount {
			c.viewIndex++
			c.row = -1
			continue
		}
		return true
	}
}

func (c *orderedComponentQueryCore) release() {
	if !c.locked {
		return
	}
	c.locked = false
	c.store.unlock(c.lockBit)
}

func (c *orderedComponentQueryCore) currentView() *pageView { return &c.views[c.viewIndex] }

func (c *orderedComponentQueryCore) currentEntity() Entity {
	return c.entities[c.viewIndex][c.row]
}
