package archgrid

// Entity is a handle to a row in a Store: an id plus the version the id
// held when the handle was issued. A handle whose version no longer
// matches the id's current version refers to a since-recycled id and is
// stale.
type Entity struct {
	ID      uint32
	Version uint32
}

// entityRecord is the per-id bookkeeping an EntitiesContainer keeps: the
// current version and (while alive) where its row lives. Whether the id is
// presently alive is tracked separately in the container's alive bitset.
type entityRecord struct {
	version uint32
	slot    int
	page    int
	row     int
}

// entitiesContainer is the entity id allocator: it hands out ids (reusing
// freed ones, bumping their version), tracks liveness in a growable
// bitset, and records where each alive entity's row currently sits so the
// Store can resolve an Entity to a component row in O(1).
type entitiesContainer struct {
	records []entityRecord
	alive   bitset
	free    []uint32
}

func newEntitiesContainer(capacityHint int) *entitiesContainer {
	return &entitiesContainer{
		records: make([]entityRecord, 0, capacityHint),
		alive:   newBitset(capacityHint),
	}
}

// create allocates a new id (recycling a freed one when available) and
// marks it alive. The returned Entity's row must be set via setLocation
// before it is considered fully placed.
func (c *entitiesContainer) create() Entity {
	var id uint32
	if n := len(c.free); n > 0 {
		id = c.free[n-1]
		c.free = c.free[:n-1]
		c.records[id].version++
	} else {
		id = uint32(len(c.records))
		c.records = append(c.records, entityRecord{version: 1})
		c.alive.grow(len(c.records))
	}
	c.alive.set(id)
	return Entity{ID: id, Version: c.records[id].version}
}

// destroy frees id for reuse. Its version is bumped the next time it's
// recycled by create, not here, so that IsAlive/valid checks against the
// version recorded at destroy time still resolve correctly until reuse.
func (c *entitiesContainer) destroy(id uint32) {
	c.alive.clear(id)
	c.free = append(c.free, id)
}

// isAlive reports whether e refers to a currently live row: the id must
// be within range, alive, and e's version must match the id's current
// version.
func (c *entitiesContainer) isAlive(e Entity) bool {
	if int(e.ID) >= len(c.records) {
		return false
	}
	return c.alive.isSet(e.ID) && c.records[e.ID].version == e.Version
}

func (c *entitiesContainer) setLocation(id uint32, slot, page, row int) {
	r := &c.records[id]
	r.slot, r.page, r.row = slot, page, row
}

func (c *entitiesContainer) location(id uint32) (slot, page, row int) {
	r := &c.records[id]
	return r.slot, r.page, r.row
}

func (c *entitiesContainer) hasLocation(id uint32, slot, page, row int) bool {
	s, p, r := c.location(id)
	return s == slot && p == page && r == row
}

// capacity returns the number of ids ever allocated (dead or alive),
// which bounds the valid index range for id-indexed side tables like tag
// bitsets and order group links.
func (c *entitiesContainer) capacity() int { return len(c.records) }
