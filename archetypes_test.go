package archgrid

import "testing"

// TestArchetypeSlotReclaimedWhenLastPageDrains exercises the archetype-slot
// free list: once every entity in an archetype is removed (its one page
// drains and releases), the slot itself is freed and excluded from live(),
// and a later archetype with a distinct signature reuses that slot index.
func TestArchetypeSlotReclaimedWhenLastPageDrains(t *testing.T) {
	store := NewStore()
	posArch := buildArchetype(RegisterComponent[Position]())

	e, err := store.CreateEntityWithArchetype(posArch, WithComponent(Position{X: 1}))
	if err != nil {
		t.Fatalf("CreateEntityWithArchetype: %v", err)
	}

	liveBefore := len(store.archetypes.live())
	if liveBefore != 1 {
		t.Fatalf("expected 1 live archetype slot after first entity, got %d", liveBefore)
	}

	if err := store.DestroyEntity(e); err != nil {
		t.Fatalf("DestroyEntity: %v", err)
	}
	if live := len(store.archetypes.live()); live != 0 {
		t.Errorf("expected 0 live archetype slots once the only entity is destroyed, got %d", live)
	}

	velArch := buildArchetype(RegisterComponent[Velocity]())
	if _, err := store.CreateEntityWithArchetype(velArch, WithComponent(Velocity{X: 2})); err != nil {
		t.Fatalf("CreateEntityWithArchetype: %v", err)
	}
	if live := len(store.archetypes.live()); live != 1 {
		t.Errorf("expected 1 live archetype slot for the new archetype, got %d", live)
	}
	if len(store.archetypes.freeSlots) != 0 {
		t.Errorf("expected the freed slot to have been reused, freeSlots = %v", store.archetypes.freeSlots)
	}
}
