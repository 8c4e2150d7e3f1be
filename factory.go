package archgrid

// factory implements the factory pattern for archgrid's constructor
// surface, mirroring the package-level Factory used by its teacher.
type factory struct{}

// Factory is the global factory instance for creating stores and queries.
var Factory factory

// NewStore creates a Store with the default entity capacity hint.
func (f factory) NewStore() *Store {
	return NewStore()
}

// NewStoreWithCapacity creates a Store pre-sized for entityCapacityHint
// live entities.
func (f factory) NewStoreWithCapacity(entityCapacityHint int) *Store {
	return NewStoreWithCapacity(entityCapacityHint)
}

// NewQuery creates an empty composable Query.
func (f factory) NewQuery() Query {
	return NewQuery()
}

// FactoryNewCache creates a new Cache with the specified capacity.
func FactoryNewCache[T any](cap int) Cache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: cap,
	}
}
