package archgrid

import (
	"fmt"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
)

// Store is the façade over every container that makes up an archetype
// store: entity id allocation, archetype/page storage, tags, order
// groups, and the deferred-operation queue used while a query holds the
// store locked.
type Store struct {
	entities    *entitiesContainer
	archetypes  *archetypesContainer
	tags        *tagContainer
	orderGroups *orderGroupContainer

	hasArchetype bitset

	locks        mask.Mask256
	freeLockBits []uint32
	nextLockBit  uint32
	queue        entityOperationsQueue

	pageSize int
}

// defaultEntityCapacityHint sizes the entity side tables' initial
// backing arrays; they grow on demand past this, it only avoids a string
// of small reallocations for the common case.
const defaultEntityCapacityHint = 64

// NewStore builds an empty store using the configured default page size.
func NewStore() *Store {
	return NewStoreWithCapacity(defaultEntityCapacityHint)
}

// NewStoreWithCapacity builds an empty store, pre-sizing entity side
// tables for entityCapacityHint entities.
func NewStoreWithCapacity(entityCapacityHint int) *Store {
	return &Store{
		entities:    newEntitiesContainer(entityCapacityHint),
		archetypes:  newArchetypesContainer(Config.pageSize, Config.events),
		tags:        newTagContainer(),
		orderGroups: newOrderGroupContainer(),
		hasArchetype: newBitset(entityCapacityHint),
		pageSize:    Config.pageSize,
	}
}

// IsAlive reports whether e refers to a currently live entity.
func (s *Store) IsAlive(e Entity) bool {
	return s.entities.isAlive(e)
}

func (s *Store) checkAlive(e Entity) error {
	if int(e.ID) >= s.entities.capacity() {
		return ErrUnknownEntity{ID: e.ID}
	}
	if !s.entities.isAlive(e) {
		return ErrStaleHandle{Entity: e}
	}
	return nil
}

// checkKnown validates that e's id was allocated at some point, without
// requiring e to still be alive. Mutators that must silently no-op on a
// dead/stale handle (rather than error) use this instead of checkAlive.
func (s *Store) checkKnown(e Entity) error {
	if int(e.ID) >= s.entities.capacity() {
		return ErrUnknownEntity{ID: e.ID}
	}
	return nil
}

func (s *Store) growSideTables() {
	n := s.entities.capacity()
	s.hasArchetype.grow(n)
	for _, b := range s.tags.bitmaps {
		b.grow(n)
	}
	for _, g := range s.orderGroups.groups {
		g.grow(n)
	}
}

// CreateEntity allocates a new entity with no archetype: it is alive but
// carries no components until AddComponents places it into one.
func (s *Store) CreateEntity() Entity {
	e := s.entities.create()
	s.growSideTables()
	// Explicit, not relied-upon-as-zero-value: see DESIGN.md's resolution
	// of the hasArchetype open question.
	s.hasArchetype.clear(e.ID)
	return e
}

// CreateEntityWithArchetype allocates a new entity already placed into
// arch, writing any supplied initial values into its row. Values for
// components not present in arch are ignored; components in arch with no
// supplied value are left uninitialized.
func (s *Store) CreateEntityWithArchetype(arch Archetype, values ...componentValue) (Entity, error) {
	e := s.entities.create()
	s.growSideTables()

	slotIdx, pageIdx, row, err := s.archetypes.addEntity(e.ID, arch)
	if err != nil {
		return Entity{}, err
	}
	s.entities.setLocation(e.ID, slotIdx, pageIdx, row)
	s.hasArchetype.set(e.ID)

	page := s.archetypes.page(pageIdx)
	slot := s.archetypes.slotAt(slotIdx)
	s.writeValues(page, slot, row, values)
	return e, nil
}

// writeValues copies each value whose component is present in slot into
// page at row. Values for components slot doesn't carry are ignored.
func (s *Store) writeValues(page *archetypeDataPage, slot *archetypeSlot, row int, values []componentValue) {
	for _, v := range values {
		for i, c := range slot.components {
			if c.id == v.ct.id {
				page.writeValue(slot.layout.Offset(i), row, c.size, v.ptr)
				break
			}
		}
	}
}

// DestroyEntity frees e's id for reuse, removing its row from whatever
// archetype it occupies (if any) and clearing its tag/order-group
// membership. Destroying an already-dead or stale handle returns
// ErrStaleHandle (or ErrUnknownEntity for an id never allocated).
func (s *Store) DestroyEntity(e Entity) error {
	if err := s.checkAlive(e); err != nil {
		return err
	}
	if s.Locked() {
		return ErrStorageLocked{}
	}
	s.removeFromArchetype(e.ID)
	s.tags.removeAllForEntity(e.ID)
	s.orderGroups.removeAllForEntity(e.ID)
	s.entities.destroy(e.ID)
	return nil
}

// EnqueueDestroyEntity destroys e immediately if the store isn't locked,
// otherwise defers it until the last lock releases.
func (s *Store) EnqueueDestroyEntity(e Entity) error {
	if !s.Locked() {
		return s.DestroyEntity(e)
	}
	s.queue.enqueue(destroyEntityOp{entity: e})
	return nil
}

// removeFromArchetype swap-removes id's row, if it has one, fixing up the
// entity that got moved into its place.
func (s *Store) removeFromArchetype(id uint32) {
	if !s.hasArchetype.isSet(id) {
		return
	}
	slotIdx, pageIdx, row := s.entities.location(id)
	movedID, moved := s.archetypes.swapRemoveEntity(slotIdx, pageIdx, row)
	if moved {
		s.entities.setLocation(movedID, slotIdx, pageIdx, row)
	}
	s.hasArchetype.clear(id)
}

// AddComponents adds one or more components to e, migrating it to a new
// archetype if any of them weren't already present. Components already
// present have their value overwritten in place without a migration.
// A dead or stale e is silently a no-op.
func (s *Store) AddComponents(e Entity, values ...componentValue) error {
	if err := s.checkKnown(e); err != nil {
		return err
	}
	if !s.IsAlive(e) || len(values) == 0 {
		return nil
	}
	if s.Locked() {
		return ErrStorageLocked{}
	}

	if !s.hasArchetype.isSet(e.ID) {
		builder := NewArchetypeBuilder()
		for _, v := range values {
			builder.Include(v.ct)
		}
		return s.placeIntoArchetype(e, builder.Build(), values)
	}

	slotIdx, pageIdx, row := s.entities.location(e.ID)
	slot := s.archetypes.slotAt(slotIdx)

	var newMask mask.Mask
	for _, v := range values {
		newMask.Mark(uint32(v.ct.id))
	}
	if slot.sig.ContainsAll(newMask) {
		s.writeValues(s.archetypes.page(pageIdx), slot, row, values)
		return nil
	}

	builder := NewArchetypeBuilder()
	for _, c := range slot.components {
		builder.Include(c)
	}
	for _, v := range values {
		builder.Include(v.ct)
	}
	return s.migrate(e, builder.Build(), values)
}

// EnqueueAddComponents adds components immediately if the store isn't
// locked, otherwise defers the add until the last lock releases.
func (s *Store) EnqueueAddComponents(e Entity, values ...componentValue) error {
	if !s.Locked() {
		return s.AddComponents(e, values...)
	}
	s.queue.enqueue(addComponentsOp{entity: e, values: values})
	return nil
}

// RemoveComponents removes the given components from e, migrating it to a
// smaller archetype (or to the no-archetype state, if none remain).
// Removing a component e doesn't have is a no-op for that component. A
// dead or stale e is silently a no-op.
func (s *Store) RemoveComponents(e Entity, types ...ComponentType) error {
	if err := s.checkKnown(e); err != nil {
		return err
	}
	if !s.IsAlive(e) || len(types) == 0 || !s.hasArchetype.isSet(e.ID) {
		return nil
	}
	if s.Locked() {
		return ErrStorageLocked{}
	}

	slotIdx, _, _ := s.entities.location(e.ID)
	slot := s.archetypes.slotAt(slotIdx)

	builder := NewArchetypeBuilder()
	for _, c := range slot.components {
		builder.Include(c)
	}
	for _, t := range types {
		builder.Exclude(t)
	}
	newArch := builder.Build()
	if len(newArch.components) == len(slot.components) {
		return nil
	}
	if len(newArch.components) == 0 {
		s.removeFromArchetype(e.ID)
		return nil
	}
	return s.migrate(e, newArch, nil)
}

// EnqueueRemoveComponents removes components immediately if the store
// isn't locked, otherwise defers the removal until the last lock
// releases.
func (s *Store) EnqueueRemoveComponents(e Entity, types ...ComponentType) error {
	if !s.Locked() {
		return s.RemoveComponents(e, types...)
	}
	s.queue.enqueue(removeComponentsOp{entity: e, types: types})
	return nil
}

// placeIntoArchetype moves an entity with no archetype yet into arch.
func (s *Store) placeIntoArchetype(e Entity, arch Archetype, values []componentValue) error {
	slotIdx, pageIdx, row, err := s.archetypes.addEntity(e.ID, arch)
	if err != nil {
		return err
	}
	s.entities.setLocation(e.ID, slotIdx, pageIdx, row)
	s.hasArchetype.set(e.ID)
	s.writeValues(s.archetypes.page(pageIdx), s.archetypes.slotAt(slotIdx), row, values)
	return nil
}

// migrate moves an already-placed entity from its current archetype to
// newArch, copying over every component the two archetypes share and
// writing values for any newly-added ones.
func (s *Store) migrate(e Entity, newArch Archetype, values []componentValue) error {
	oldSlotIdx, oldPageIdx, oldRow := s.entities.location(e.ID)
	oldSlot := s.archetypes.slotAt(oldSlotIdx)
	oldPage := s.archetypes.page(oldPageIdx)

	newSlotIdx, newPageIdx, newRow, err := s.archetypes.addEntity(e.ID, newArch)
	if err != nil {
		return err
	}
	newSlot := s.archetypes.slotAt(newSlotIdx)
	newPage := s.archetypes.page(newPageIdx)

	oldPage.copyColumnsInto(
		newPage, oldRow, newRow,
		oldSlot.components, oldSlot.layout.columnOffsets,
		newSlot.components, newSlot.layout.columnOffsets,
	)
	s.writeValues(newPage, newSlot, newRow, values)

	movedID, moved := s.archetypes.swapRemoveEntity(oldSlotIdx, oldPageIdx, oldRow)
	if moved {
		s.entities.setLocation(movedID, oldSlotIdx, oldPageIdx, oldRow)
	}
	s.entities.setLocation(e.ID, newSlotIdx, newPageIdx, newRow)
	return nil
}

// AddTag marks e as carrying tag. Adding a tag e already has is a no-op.
// A dead or stale e is silently a no-op.
func (s *Store) AddTag(e Entity, tag TagID) error {
	if err := s.checkKnown(e); err != nil {
		return err
	}
	if !s.IsAlive(e) {
		return nil
	}
	s.tags.add(tag, e.ID, s.entities.capacity())
	return nil
}

// EnqueueAddTag adds the tag immediately if the store isn't locked,
// otherwise defers it until the last lock releases.
func (s *Store) EnqueueAddTag(e Entity, tag TagID) error {
	if !s.Locked() {
		return s.AddTag(e, tag)
	}
	s.queue.enqueue(addTagOp{entity: e, tag: tag})
	return nil
}

// RemoveTag clears tag from e, if present. A dead or stale e is silently
// a no-op.
func (s *Store) RemoveTag(e Entity, tag TagID) error {
	if err := s.checkKnown(e); err != nil {
		return err
	}
	if !s.IsAlive(e) {
		return nil
	}
	s.tags.remove(tag, e.ID)
	return nil
}

// EnqueueRemoveTag removes the tag immediately if the store isn't locked,
// otherwise defers it until the last lock releases.
func (s *Store) EnqueueRemoveTag(e Entity, tag TagID) error {
	if !s.Locked() {
		return s.RemoveTag(e, tag)
	}
	s.queue.enqueue(removeTagOp{entity: e, tag: tag})
	return nil
}

// HasTag reports whether e currently carries tag.
func (s *Store) HasTag(e Entity, tag TagID) bool {
	return s.IsAlive(e) && s.tags.has(tag, e.ID)
}

// AddOrderedBy links e into group at its tail.
func (s *Store) AddOrderedBy(group GroupID, e Entity) error {
	if err := s.checkAlive(e); err != nil {
		return err
	}
	return s.orderGroups.append(group, e.ID, s.entities.capacity())
}

// InsertOrderedAfter links e into group immediately after ref.
func (s *Store) InsertOrderedAfter(group GroupID, e, ref Entity) error {
	if err := s.checkAlive(e); err != nil {
		return err
	}
	if err := s.checkAlive(ref); err != nil {
		return err
	}
	return s.orderGroups.insertAfter(group, e.ID, ref.ID, s.entities.capacity())
}

// InsertOrderedBefore links e into group immediately before ref.
func (s *Store) InsertOrderedBefore(group GroupID, e, ref Entity) error {
	if err := s.checkAlive(e); err != nil {
		return err
	}
	if err := s.checkAlive(ref); err != nil {
		return err
	}
	return s.orderGroups.insertBefore(group, e.ID, ref.ID, s.entities.capacity())
}

// RemoveOrdered unlinks e from group, if linked.
func (s *Store) RemoveOrdered(group GroupID, e Entity) {
	if !s.IsAlive(e) {
		return
	}
	s.orderGroups.remove(group, e.ID)
}

func (s *Store) entityFor(id uint32) Entity {
	return Entity{ID: id, Version: s.entities.records[id].version}
}

// FirstOrdered returns group's head entity, or false if the group is empty.
func (s *Store) FirstOrdered(group GroupID) (Entity, bool) {
	id, ok := s.orderGroups.head(group)
	if !ok {
		return Entity{}, false
	}
	return s.entityFor(id), true
}

// LastOrdered returns group's tail entity, or false if the group is empty.
func (s *Store) LastOrdered(group GroupID) (Entity, bool) {
	id, ok := s.orderGroups.tail(group)
	if !ok {
		return Entity{}, false
	}
	return s.entityFor(id), true
}

// NextOrdered returns the entity linked immediately after e in group, or
// false if e has no successor (or isn't linked into group).
func (s *Store) NextOrdered(group GroupID, e Entity) (Entity, bool) {
	if !s.orderGroups.has(group, e.ID) {
		return Entity{}, false
	}
	id, ok := s.orderGroups.next(group, e.ID)
	if !ok {
		return Entity{}, false
	}
	return s.entityFor(id), true
}

// PreviousOrdered returns the entity linked immediately before e in group,
// or false if e has no predecessor (or isn't linked into group).
func (s *Store) PreviousOrdered(group GroupID, e Entity) (Entity, bool) {
	if !s.orderGroups.has(group, e.ID) {
		return Entity{}, false
	}
	id, ok := s.orderGroups.previous(group, e.ID)
	if !ok {
		return Entity{}, false
	}
	return s.entityFor(id), true
}

// Locked reports whether any query currently holds the store locked.
func (s *Store) Locked() bool {
	return !s.locks.IsEmpty()
}

// lock acquires a fresh lock bit, returned so the holder can release
// exactly that bit later. Multiple concurrently open queries each get a
// distinct bit; the store stays locked as long as any bit is set.
func (s *Store) lock() uint32 {
	var bit uint32
	if n := len(s.freeLockBits); n > 0 {
		bit = s.freeLockBits[n-1]
		s.freeLockBits = s.freeLockBits[:n-1]
	} else {
		bit = s.nextLockBit
		s.nextLockBit++
	}
	s.locks.Mark(bit)
	return bit
}

// unlock releases bit, and once no bits remain, replays every queued
// structural operation.
func (s *Store) unlock(bit uint32) {
	s.locks.Unmark(bit)
	s.freeLockBits = append(s.freeLockBits, bit)
	if s.locks.IsEmpty() {
		if err := s.queue.processAll(s); err != nil {
			panic(bark.AddTrace(fmt.Errorf("archgrid: replaying queued operations: %w", err)))
		}
	}
}

// archetypeOf returns the Archetype descriptor for e's current slot. e
// must have an archetype (callers check hasArchetype first).
func (s *Store) archetypeOf(id uint32) Archetype {
	slotIdx, _, _ := s.entities.location(id)
	slot := s.archetypes.slotAt(slotIdx)
	return Archetype{components: slot.components, sig: slot.sig}
}

// GetEntityArchetype returns e's current Archetype, or false if e is
// dead/stale or carries no components yet.
func (s *Store) GetEntityArchetype(e Entity) (Archetype, bool) {
	if !s.IsAlive(e) || !s.hasArchetype.isSet(e.ID) {
		return Archetype{}, false
	}
	return s.archetypeOf(e.ID), true
}
