package archgrid

import "testing"

func TestArchetypeBuilderOrderIndependence(t *testing.T) {
	pos := RegisterComponent[Position]()
	vel := RegisterComponent[Velocity]()

	a := NewArchetypeBuilder().Include(pos).Include(vel).Build()
	b := NewArchetypeBuilder().Include(vel).Include(pos).Build()

	if a.Signature() != b.Signature() {
		t.Errorf("archetypes built from the same set in different orders should compare equal")
	}
	if len(a.Components()) != 2 || len(b.Components()) != 2 {
		t.Fatalf("expected 2 components in each, got %d and %d", len(a.Components()), len(b.Components()))
	}
	if a.Components()[0].ID() != b.Components()[0].ID() {
		t.Errorf("component lists should be sorted into the same order regardless of build order")
	}
}

func TestArchetypeBuilderExclude(t *testing.T) {
	pos := RegisterComponent[Position]()
	vel := RegisterComponent[Velocity]()

	b := NewArchetypeBuilder().Include(pos).Include(vel)
	b.Exclude(vel)
	arch := b.Build()

	if arch.Has(vel.ID()) {
		t.Errorf("excluded component should not be present")
	}
	if !arch.Has(pos.ID()) {
		t.Errorf("non-excluded component should remain present")
	}
}

func TestArchetypeHas(t *testing.T) {
	pos := RegisterComponent[Position]()
	health := RegisterComponent[Health]()
	arch := NewArchetypeBuilder().Include(pos).Build()

	if !arch.Has(pos.ID()) {
		t.Errorf("expected Has to report true for an included component")
	}
	if arch.Has(health.ID()) {
		t.Errorf("expected Has to report false for an excluded component")
	}
}

func TestIncludeComponentHelper(t *testing.T) {
	b := NewArchetypeBuilder()
	IncludeComponent[Position](b)
	IncludeComponent[Velocity](b)
	arch := b.Build()

	if len(arch.Components()) != 2 {
		t.Fatalf("expected 2 components, got %d", len(arch.Components()))
	}
}
