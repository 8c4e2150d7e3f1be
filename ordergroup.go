package archgrid

// GroupID names an order group: an independent doubly-linked ordering
// over a subset of live entities (e.g. render order, turn order).
type GroupID uint32

// nullLink is the sentinel used in place of a valid entity id to mark the
// absence of a previous/next link, matching the 0xFFFFFFFF convention
// used by the order-group linked list this type is based on.
const nullLink = ^uint32(0)

type orderLink struct {
	prev, next uint32
	linked     bool
}

// orderGroup is one group's doubly-linked list, stored as a links slice
// indexed by entity id rather than as a conventional pointer-linked list,
// so that removal and neighbor lookups by id stay O(1).
type orderGroup struct {
	head, tail uint32
	links      []orderLink
}

func newOrderGroup() *orderGroup {
	return &orderGroup{head: nullLink, tail: nullLink}
}

func (g *orderGroup) grow(n int) {
	if n <= len(g.links) {
		return
	}
	grown := make([]orderLink, n)
	copy(grown, g.links)
	for i := len(g.links); i < n; i++ {
		grown[i] = orderLink{prev: nullLink, next: nullLink}
	}
	g.links = grown
}

// orderGroupContainer owns every GroupID's orderGroup for a Store.
type orderGroupContainer struct {
	groups map[GroupID]*orderGroup
}

func newOrderGroupContainer() *orderGroupContainer {
	return &orderGroupContainer{groups: make(map[GroupID]*orderGroup)}
}

func (c *orderGroupContainer) group(g GroupID) *orderGroup {
	og, ok := c.groups[g]
	if !ok {
		og = newOrderGroup()
		c.groups[g] = og
	}
	return og
}

// append links id at the tail of group.
func (c *orderGroupContainer) append(group GroupID, id uint32, entityCapacity int) error {
	g := c.group(group)
	g.grow(entityCapacity)
	if g.links[id].linked {
		return ErrDuplicateOrderLink{Group: group, ID: id}
	}
	g.links[id] = orderLink{prev: g.tail, next: nullLink, linked: true}
	if g.tail != nullLink {
		g.links[g.tail].next = id
	} else {
		g.head = id
	}
	g.tail = id
	return nil
}

// insertAfter links id immediately after ref within group. ref must
// already be linked in group.
func (c *orderGroupContainer) insertAfter(group GroupID, id, ref uint32, entityCapacity int) error {
	g := c.group(group)
	g.grow(entityCapacity)
	if g.links[id].linked {
		return ErrDuplicateOrderLink{Group: group, ID: id}
	}
	refNext := g.links[ref].next
	g.links[id] = orderLink{prev: ref, next: refNext, linked: true}
	g.links[ref].next = id
	if refNext != nullLink {
		g.links[refNext].prev = id
	} else {
		g.tail = id
	}
	return nil
}

// insertBefore links id immediately before ref within group. ref must
// already be linked in group.
func (c *orderGroupContainer) insertBefore(group GroupID, id, ref uint32, entityCapacity int) error {
	g := c.group(group)
	g.grow(entityCapacity)
	if g.links[id].linked {
		return ErrDuplicateOrderLink{Group: group, ID: id}
	}
	refPrev := g.links[ref].prev
	g.links[id] = orderLink{prev: refPrev, next: ref, linked: true}
	g.links[ref].prev = id
	if refPrev != nullLink {
		g.links[refPrev].next = id
	} else {
		g.head = id
	}
	return nil
}

// remove unlinks id from group, if it is linked there.
func (c *orderGroupContainer) remove(group GroupID, id uint32) {
	g, ok := c.groups[group]
	if !ok || int(id) >= len(g.links) || !g.links[id].linked {
		return
	}
	link := g.links[id]
	if link.prev != nullLink {
		g.links[link.prev].next = link.next
	} else {
		g.head = link.next
	}
	if link.next != nullLink {
		g.links[link.next].prev = link.prev
	} else {
		g.tail = link.prev
	}
	g.links[id] = orderLink{prev: nullLink, next: nullLink}
}

// removeAllForEntity unlinks id from every group it participates in,
// used when an entity is destroyed.
func (c *orderGroupContainer) removeAllForEntity(id uint32) {
	for group := range c.groups {
		c.remove(group, id)
	}
}

func (c *orderGroupContainer) has(group GroupID, id uint32) bool {
	g, ok := c.groups[group]
	if !ok || int(id) >= len(g.links) {
		return false
	}
	return g.links[id].linked
}

// head/tail/next/previous walk a group's traversal order in either
// direction.
func (c *orderGroupContainer) head(group GroupID) (uint32, bool) {
	g, ok := c.groups[group]
	if !ok || g.head == nullLink {
		return 0, false
	}
	return g.head, true
}

func (c *orderGroupContainer) tail(group GroupID) (uint32, bool) {
	g, ok := c.groups[group]
	if !ok || g.tail == nullLink {
		return 0, false
	}
	return g.tail, true
}

func (c *orderGroupContainer) next(group GroupID, id uint32) (uint32, bool) {
	g := c.groups[group]
	n := g.links[id].next
	if n == nullLink {
		return 0, false
	}
	return n, true
}

func (c *orderGroupContainer) previous(group GroupID, id uint32) (uint32, bool) {
	g := c.groups[group]
	p := g.links[id].prev
	if p == nullLink {
		return 0, false
	}
	return p, true
}
