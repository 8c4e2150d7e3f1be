/*
Package archgrid is an archetype-based entity-component store for games and
simulations.

It keeps entities with the same component types grouped together, column by
column, so iterating a query reads tightly-packed memory instead of chasing
pointers.

Core Concepts:

  - Entity: a {ID, Version} handle to a row of component data.
  - ComponentType: a registered type, identified by a stable ComponentID.
  - Archetype: the exact set of component types a group of entities share.
  - Store: owns every entity, archetype, tag and order group.
  - Query: ComponentQuery, EntityComponentQuery and OrderedComponentQuery
    iterate a Store's rows in three different orders.

Basic Usage:

	type Position struct{ X, Y float64 }
	type Velocity struct{ X, Y float64 }

	store := archgrid.NewStore()

	builder := archgrid.NewArchetypeBuilder()
	archgrid.IncludeComponent[Position](builder)
	archgrid.IncludeComponent[Velocity](builder)
	arch := builder.Build()

	entity, _ := store.CreateEntityWithArchetype(arch,
		archgrid.WithComponent(Position{X: 1}),
		archgrid.WithComponent(Velocity{X: 2, Y: 1}),
	)
	_ = entity

	query := archgrid.NewComponentQuery2[Position, Velocity](store)
	for query.Next() {
		pos, vel := query.Get()
		pos.X += vel.X
		pos.Y += vel.Y
	}

archgrid is the underlying ECS data store for the Gridwork engine but also
works as a standalone library.
*/
package archgrid
