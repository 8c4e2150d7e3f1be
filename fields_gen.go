package archgrid

// GetComponents1 returns a pointer to e's T1 component, and false if e is
// dead, stale, or has no archetype carrying T1.
func GetComponents1[T1 any](s *Store, e Entity) (*T1, bool) {
	if !s.IsAlive(e) || !s.hasArchetype.isSet(e.ID) {
		return nil, false
	}
	id1 := componentIDOf[T1]()
	slotIdx, pageIdx, row := s.entities.location(e.ID)
	slot := s.archetypes.slotAt(slotIdx)
	if !slot.sig.ContainsAll(maskOf(id1)) {
		return nil, false
	}
	offsets := resolveOffsets(slot, []ComponentID{id1})
	page := s.archetypes.page(pageIdx)
	return columnAt[T1](page, offsets[0], row), true
}

// GetComponents2 returns pointers to e's T1 and T2 components, and false
// if either is missing (or e is dead/stale).
func GetComponents2[T1, T2 any](s *Store, e Entity) (*T1, *T2, bool) {
	if !s.IsAlive(e) || !s.hasArchetype.isSet(e.ID) {
		return nil, nil, false
	}
	id1, id2 := componentIDOf[T1](), componentIDOf[T2]()
	slotIdx, pageIdx, row := s.entities.location(e.ID)
	slot := s.archetypes.slotAt(slotIdx)
	if !slot.sig.ContainsAll(maskOf(id1, id2)) {
		return nil, nil, false
	}
	offsets := resolveOffsets(slot, []ComponentID{id1, id2})
	page := s.archetypes.page(pageIdx)
	return columnAt[T1](page, offsets[0], row), columnAt[T2](page, offsets[1], row), true
}

// GetComponents3 returns pointers to e's T1, T2 and T3 components, and
// false if any is missing (or e is dead/stale).
func GetComponents3[T1, T2, T3 any](s *Store, e Entity) (*T1, *T2, *T3, bool) {
	if !s.IsAlive(e) || !s.hasArchetype.isSet(e.ID) {
		return nil, nil, nil, false
	}
	id1, id2, id3 := componentIDOf[T1](), componentIDOf[T2](), componentIDOf[T3]()
	slotIdx, pageIdx, row := s.entities.location(e.ID)
	slot := s.archetypes.slotAt(slotIdx)
	if !slot.sig.ContainsAll(maskOf(id1, id2, id3)) {
		return nil, nil, nil, false
	}
	offsets := resolveOffsets(slot, []ComponentID{id1, id2, id3})
	page := s.archetypes.page(pageIdx)
	return columnAt[T1](page, offsets[0], row),
		columnAt[T2](page, offsets[1], row),
		columnAt[T3](page, offsets[2], row),
		true
}

// GetComponents4 returns pointers to e's T1, T2, T3 and T4 components,
// and false if any is missing (or e is dead/stale).
func GetComponents4[T1, T2, T3, T4 any](s *Store, e Entity) (*T1, *T2, *T3, *T4, bool) {
	if !s.IsAlive(e) || !s.hasArchetype.isSet(e.ID) {
		return nil, nil, nil, nil, false
	}
	id1, id2, id3, id4 := componentIDOf[T1](), componentIDOf[T2](), componentIDOf[T3](), componentIDOf[T4]()
	slotIdx, pageIdx, row := s.entities.location(e.ID)
	slot := s.archetypes.slotAt(slotIdx)
	if !slot.sig.ContainsAll(maskOf(id1, id2, id3, id4)) {
		return nil, nil, nil, nil, false
	}
	offsets := resolveOffsets(slot, []ComponentID{id1, id2, id3, id4})
	page := s.archetypes.page(pageIdx)
	return columnAt[T1](page, offsets[0], row),
		columnAt[T2](page, offsets[1], row),
		columnAt[T3](page, offsets[2], row),
		columnAt[T4](page, offsets[3], row),
		true
}
