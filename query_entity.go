package archgrid

import "github.com/TheBitDrifter/mask"

// ecRange groups a run of consecutive entries from an EntityComponentQuery's
// input list that happen to land on the same page, so their column
// offsets are resolved once instead of per entity.
type ecRange struct {
	page    *archetypeDataPage
	offsets []uintptr
	rows    []int
	entities []Entity
}

// entityComponentQueryCore implements the caller-supplied-order scan
// shared by every EntityComponentQueryN: it walks a caller-provided
// entity list once, keeping only entities that are alive and carry every
// required component, and yields them back in their original relative
// order.
type entityComponentQueryCore struct {
	store   *Store
	ids     []ComponentID
	reqMask mask.Mask
	input   []Entity

	initialized bool
	ranges      []ecRange
	rangeIndex  int
	idx         int

	locked  bool
	lockBit uint32
}

func newEntityComponentQueryCore(s *Store, ids []ComponentID, input []Entity) entityComponentQueryCore {
	return entityComponentQueryCore{store: s, ids: ids, reqMask: maskOf(ids...), input: input}
}

func (c *entityComponentQueryCore) init() {
	c.initialized = true
	c.lockBit = c.store.lock()
	c.locked = true
	c.ranges = c.ranges[:0]

	for _, e := range c.input {
		if !c.store.IsAlive(e) || !c.store.hasArchetype.isSet(e.ID) {
			continue
		}
		slotIdx, pageIdx, row := c.store.entities.location(e.ID)
		slot := c.store.archetypes.slotAt(slotIdx)
		if !slot.sig.ContainsAll(c.reqMask) {
			continue
		}
		page := c.store.archetypes.page(pageIdx)

		if n := len(c.ranges); n > 0 && c.ranges[n-1].page == page {
			r := &c.ranges[n-1]
			r.rows = append(r.rows, row)
			r.entities = append(r.entities, e)
			continue
		}
		c.ranges = append(c.ranges, ecRange{
			page:     page,
			offsets:  resolveOffsets(slot, c.ids),
			rows:     []int{row},
			entities: []Entity{e},
		})
	}
	c.rangeIndex = 0
	c.idx = -1
}

func (c *entityComponentQueryCore) next() bool {
	for {
		if c.rangeIndex >= len(c.ranges) {
			c.release()
			return false
		}
		c.idx++
		if c.idx >= len(c.ranges[c.rangeIndex].rows) {
			c.rangeIndex++
			c.idx = -1
			continue
		}
		return true
	}
}

func (c *entityComponentQueryCore) release() {
	if !c.locked {
		return
	}
	c.locked = false
	c.store.unlock(c.lockBit)
}

func (c *entityComponentQueryCore) currentRange() *ecRange { return &c.ranges[c.rangeIndex] }

func (c *entityComponentQueryCore) currentRow() int {
	return c.currentRange().rows[c.idx]
}

func (c *entityComponentQueryCore) currentEntity() Entity {
	return c.currentRange().entities[c.idx]
}
