package archgrid

import "fmt"

// ErrUnknownEntity is returned when an entity id has never been allocated.
type ErrUnknownEntity struct {
	ID uint32
}

func (e ErrUnknownEntity) Error() string {
	return fmt.Sprintf("archgrid: unknown entity id %d", e.ID)
}

// ErrStaleHandle is returned when an Entity handle's version no longer
// matches the version currently assigned to its id (the id was recycled).
type ErrStaleHandle struct {
	Entity Entity
}

func (e ErrStaleHandle) Error() string {
	return fmt.Sprintf("archgrid: stale entity handle %+v", e.Entity)
}

// ErrDuplicateOrderLink is returned by AddOrderedBy when an entity is
// already linked into the group and would be linked a second time.
type ErrDuplicateOrderLink struct {
	Group GroupID
	ID    uint32
}

func (e ErrDuplicateOrderLink) Error() string {
	return fmt.Sprintf("archgrid: entity %d already linked into order group %d", e.ID, e.Group)
}

// ErrPageCapacityInvalid is returned when an archetype's component layout
// cannot fit even a single row inside a page.
type ErrPageCapacityInvalid struct {
	Components []ComponentType
	PageSize   int
}

func (e ErrPageCapacityInvalid) Error() string {
	return fmt.Sprintf(
		"archgrid: component layout %v does not fit a %d byte page",
		e.Components, e.PageSize,
	)
}

// ErrStorageLocked is returned when a structural mutation is attempted
// while a store is locked by an open query, through an entry point that
// does not enqueue.
type ErrStorageLocked struct{}

func (e ErrStorageLocked) Error() string {
	return "archgrid: store is locked by an open query"
}
