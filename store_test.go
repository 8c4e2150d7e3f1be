package archgrid

import "testing"

type Position struct{ X, Y float64 }
type Velocity struct{ X, Y float64 }
type Health struct{ HP int }
type Dead struct{}

func buildArchetype(types ...ComponentType) Archetype {
	b := NewArchetypeBuilder()
	b.IncludeAll(types...)
	return b.Build()
}

func TestCreateEntityWithArchetype(t *testing.T) {
	store := NewStore()
	posType := RegisterComponent[Position]()
	velType := RegisterComponent[Velocity]()
	arch := buildArchetype(posType, velType)

	e, err := store.CreateEntityWithArchetype(arch,
		WithComponent(Position{X: 1, Y: 2}),
		WithComponent(Velocity{X: 3, Y: 4}),
	)
	if err != nil {
		t.Fatalf("CreateEntityWithArchetype: %v", err)
	}
	if !store.IsAlive(e) {
		t.Fatalf("entity not alive after creation")
	}

	pos, vel, ok := GetComponents2[Position, Velocity](store, e)
	if !ok {
		t.Fatalf("expected entity to carry Position and Velocity")
	}
	if pos.X != 1 || pos.Y != 2 {
		t.Errorf("Position = %+v, want {1 2}", *pos)
	}
	if vel.X != 3 || vel.Y != 4 {
		t.Errorf("Velocity = %+v, want {3 4}", *vel)
	}
}

func TestAddComponentsMigratesArchetype(t *testing.T) {
	store := NewStore()
	e := store.CreateEntity()

	if err := store.AddComponents(e, WithComponent(Position{X: 1, Y: 1})); err != nil {
		t.Fatalf("AddComponents (Position): %v", err)
	}
	if _, ok := GetComponents1[Position](store, e); !ok {
		t.Fatalf("expected Position after first AddComponents")
	}

	if err := store.AddComponents(e, WithComponent(Velocity{X: 2, Y: 2})); err != nil {
		t.Fatalf("AddComponents (Velocity): %v", err)
	}
	pos, vel, ok := GetComponents2[Position, Velocity](store, e)
	if !ok {
		t.Fatalf("expected both Position and Velocity after migration")
	}
	if pos.X != 1 || vel.X != 2 {
		t.Errorf("migrated values wrong: pos=%+v vel=%+v", *pos, *vel)
	}
}

func TestAddComponentsOverwritesInPlace(t *testing.T) {
	store := NewStore()
	arch := buildArchetype(RegisterComponent[Position]())
	e, err := store.CreateEntityWithArchetype(arch, WithComponent(Position{X: 1, Y: 1}))
	if err != nil {
		t.Fatalf("CreateEntityWithArchetype: %v", err)
	}

	if err := store.AddComponents(e, WithComponent(Position{X: 9, Y: 9})); err != nil {
		t.Fatalf("AddComponents: %v", err)
	}
	pos, ok := GetComponents1[Position](store, e)
	if !ok || pos.X != 9 || pos.Y != 9 {
		t.Errorf("expected overwritten Position {9 9}, got %+v ok=%v", pos, ok)
	}
}

func TestRemoveComponents(t *testing.T) {
	store := NewStore()
	arch := buildArchetype(RegisterComponent[Position](), RegisterComponent[Velocity]())
	e, err := store.CreateEntityWithArchetype(arch,
		WithComponent(Position{X: 1}), WithComponent(Velocity{X: 2}),
	)
	if err != nil {
		t.Fatalf("CreateEntityWithArchetype: %v", err)
	}

	if err := store.RemoveComponents(e, RegisterComponent[Velocity]()); err != nil {
		t.Fatalf("RemoveComponents: %v", err)
	}
	if _, _, ok := GetComponents2[Position, Velocity](store, e); ok {
		t.Errorf("expected Velocity to be gone")
	}
	if _, ok := GetComponents1[Position](store, e); !ok {
		t.Errorf("expected Position to survive removal of Velocity")
	}

	if err := store.RemoveComponents(e, RegisterComponent[Position]()); err != nil {
		t.Fatalf("RemoveComponents: %v", err)
	}
	if _, ok := GetComponents1[Position](store, e); ok {
		t.Errorf("expected no archetype after removing last component")
	}
}

func TestDestroyEntitySwapsDisplacedRow(t *testing.T) {
	store := NewStore()
	arch := buildArchetype(RegisterComponent[Position]())

	e1, _ := store.CreateEntityWithArchetype(arch, WithComponent(Position{X: 1}))
	e2, _ := store.CreateEntityWithArchetype(arch, WithComponent(Position{X: 2}))
	e3, _ := store.CreateEntityWithArchetype(arch, WithComponent(Position{X: 3}))

	if err := store.DestroyEntity(e1); err != nil {
		t.Fatalf("DestroyEntity: %v", err)
	}
	if store.IsAlive(e1) {
		t.Errorf("e1 should be dead")
	}

	for _, e := range []Entity{e2, e3} {
		if !store.IsAlive(e) {
			t.Errorf("entity %+v should still be alive", e)
		}
		if _, ok := GetComponents1[Position](store, e); !ok {
			t.Errorf("entity %+v lost its Position after a sibling's destruction", e)
		}
	}
}

func TestDestroyEntityReturnsErrorOnStaleHandle(t *testing.T) {
	store := NewStore()
	e := store.CreateEntity()
	if err := store.DestroyEntity(e); err != nil {
		t.Fatalf("DestroyEntity: %v", err)
	}
	if err := store.DestroyEntity(e); err == nil {
		t.Errorf("expected an error destroying an already-dead handle, got nil")
	}
}

func TestMutatorsSilentlyNoOpOnDeadHandle(t *testing.T) {
	store := NewStore()
	dead := RegisterTag[Dead]()
	e := store.CreateEntity()
	if err := store.DestroyEntity(e); err != nil {
		t.Fatalf("DestroyEntity: %v", err)
	}

	if err := store.AddComponents(e, WithComponent(Position{X: 1})); err != nil {
		t.Errorf("AddComponents on a dead handle should silently no-op, got error: %v", err)
	}
	if err := store.RemoveComponents(e, RegisterComponent[Position]()); err != nil {
		t.Errorf("RemoveComponents on a dead handle should silently no-op, got error: %v", err)
	}
	if err := store.AddTag(e, dead); err != nil {
		t.Errorf("AddTag on a dead handle should silently no-op, got error: %v", err)
	}
	if err := store.RemoveTag(e, dead); err != nil {
		t.Errorf("RemoveTag on a dead handle should silently no-op, got error: %v", err)
	}
	if _, ok := GetComponents1[Position](store, e); ok {
		t.Errorf("a dead handle should not have gained a Position from AddComponents")
	}
}

func TestStaleHandleAfterRecycle(t *testing.T) {
	store := NewStore()
	e := store.CreateEntity()
	stale := e
	if err := store.DestroyEntity(e); err != nil {
		t.Fatalf("DestroyEntity: %v", err)
	}

	recycled := store.CreateEntity()
	if recycled.ID != stale.ID {
		t.Skip("id was not recycled in this run, nothing to assert")
	}
	if store.IsAlive(stale) {
		t.Errorf("stale handle should not read as alive once its id is recycled")
	}
	if !store.IsAlive(recycled) {
		t.Errorf("recycled handle should be alive")
	}
}

func TestTags(t *testing.T) {
	store := NewStore()
	dead := RegisterTag[Dead]()
	e := store.CreateEntity()

	if store.HasTag(e, dead) {
		t.Errorf("fresh entity should not carry the tag")
	}
	if err := store.AddTag(e, dead); err != nil {
		t.Fatalf("AddTag: %v", err)
	}
	if !store.HasTag(e, dead) {
		t.Errorf("expected tag after AddTag")
	}
	if err := store.RemoveTag(e, dead); err != nil {
		t.Fatalf("RemoveTag: %v", err)
	}
	if store.HasTag(e, dead) {
		t.Errorf("expected tag gone after RemoveTag")
	}
}

func TestOrderGroupTraversal(t *testing.T) {
	store := NewStore()
	const renderOrder GroupID = 1

	a := store.CreateEntity()
	b := store.CreateEntity()
	c := store.CreateEntity()

	if err := store.AddOrderedBy(renderOrder, a); err != nil {
		t.Fatalf("AddOrderedBy a: %v", err)
	}
	if err := store.AddOrderedBy(renderOrder, b); err != nil {
		t.Fatalf("AddOrderedBy b: %v", err)
	}
	if err := store.InsertOrderedBefore(renderOrder, c, b); err != nil {
		t.Fatalf("InsertOrderedBefore: %v", err)
	}

	got := []Entity{}
	id, ok := store.orderGroups.head(renderOrder)
	for ok {
		got = append(got, Entity{ID: id})
		id, ok = store.orderGroups.next(renderOrder, id)
	}
	want := []uint32{a.ID, c.ID, b.ID}
	if len(got) != len(want) {
		t.Fatalf("traversal length = %d, want %d", len(got), len(want))
	}
	for i, e := range got {
		if e.ID != want[i] {
			t.Errorf("position %d = %d, want %d", i, e.ID, want[i])
		}
	}
}

func TestOrderedAccessors(t *testing.T) {
	store := NewStore()
	const g GroupID = 3
	a := store.CreateEntity()
	b := store.CreateEntity()
	c := store.CreateEntity()

	store.AddOrderedBy(g, a)
	store.AddOrderedBy(g, b)
	store.AddOrderedBy(g, c)

	first, ok := store.FirstOrdered(g)
	if !ok || first != a {
		t.Errorf("FirstOrdered = %+v, %v, want %+v, true", first, ok, a)
	}
	last, ok := store.LastOrdered(g)
	if !ok || last != c {
		t.Errorf("LastOrdered = %+v, %v, want %+v, true", last, ok, c)
	}

	next, ok := store.NextOrdered(g, a)
	if !ok || next != b {
		t.Errorf("NextOrdered(a) = %+v, %v, want %+v, true", next, ok, b)
	}
	if _, ok := store.NextOrdered(g, c); ok {
		t.Errorf("NextOrdered(c) should have no successor")
	}

	prev, ok := store.PreviousOrdered(g, c)
	if !ok || prev != b {
		t.Errorf("PreviousOrdered(c) = %+v, %v, want %+v, true", prev, ok, b)
	}
	if _, ok := store.PreviousOrdered(g, a); ok {
		t.Errorf("PreviousOrdered(a) should have no predecessor")
	}
}

func TestGetEntityArchetype(t *testing.T) {
	store := NewStore()
	pos := RegisterComponent[Position]()
	vel := RegisterComponent[Velocity]()
	arch := buildArchetype(pos, vel)

	e, _ := store.CreateEntityWithArchetype(arch, WithComponent(Position{}), WithComponent(Velocity{}))
	got, ok := store.GetEntityArchetype(e)
	if !ok {
		t.Fatalf("expected an archetype for a placed entity")
	}
	if got.Signature() != arch.Signature() {
		t.Errorf("GetEntityArchetype returned a different archetype than the one the entity was created with")
	}

	bare := store.CreateEntity()
	if _, ok := store.GetEntityArchetype(bare); ok {
		t.Errorf("expected false for an entity with no archetype yet")
	}
}

func TestOrderedAccessorsEmptyGroup(t *testing.T) {
	store := NewStore()
	const g GroupID = 99
	if _, ok := store.FirstOrdered(g); ok {
		t.Errorf("FirstOrdered on an empty/unused group should report false")
	}
	if _, ok := store.LastOrdered(g); ok {
		t.Errorf("LastOrdered on an empty/unused group should report false")
	}
}

func TestAddOrderedByDuplicateFails(t *testing.T) {
	store := NewStore()
	const g GroupID = 7
	e := store.CreateEntity()
	if err := store.AddOrderedBy(g, e); err != nil {
		t.Fatalf("AddOrderedBy: %v", err)
	}
	if err := store.AddOrderedBy(g, e); err == nil {
		t.Errorf("expected ErrDuplicateOrderLink on second insert")
	}
}

func TestStructuralMutationQueuedWhileLocked(t *testing.T) {
	store := NewStore()
	arch := buildArchetype(RegisterComponent[Position]())
	e, _ := store.CreateEntityWithArchetype(arch, WithComponent(Position{X: 1}))

	q := NewComponentQuery1[Position](store)
	if !q.Next() {
		t.Fatalf("expected at least one match")
	}
	if !store.Locked() {
		t.Fatalf("expected store locked during iteration")
	}
	if err := store.EnqueueRemoveComponents(e, RegisterComponent[Position]()); err != nil {
		t.Fatalf("EnqueueRemoveComponents: %v", err)
	}
	// draining Next() releases the lock and replays the queued removal
	for q.Next() {
	}
	if store.Locked() {
		t.Fatalf("expected store unlocked after query exhausted")
	}
	if _, ok := GetComponents1[Position](store, e); ok {
		t.Errorf("expected queued RemoveComponents to have been applied")
	}
}
