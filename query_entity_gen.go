package archgrid

// EntityComponentQuery1 walks a caller-supplied entity list, yielding the
// subsequence that is alive and carries T1, in the input's original
// relative order.
type EntityComponentQuery1[T1 any] struct {
	core entityComponentQueryCore
}

func NewEntityComponentQuery1[T1 any](s *Store, entities []Entity) *EntityComponentQuery1[T1] {
	return &EntityComponentQuery1[T1]{
		core: newEntityComponentQueryCore(s, []ComponentID{componentIDOf[T1]()}, entities),
	}
}

func (q *EntityComponentQuery1[T1]) Next() bool {
	if !q.core.initialized {
		q.core.init()
	}
	return q.core.next()
}

func (q *EntityComponentQuery1[T1]) Get() *T1 {
	r := q.core.currentRange()
	return columnAt[T1](r.page, r.offsets[0], q.core.currentRow())
}

func (q *EntityComponentQuery1[T1]) Entity() Entity { return q.core.currentEntity() }
func (q *EntityComponentQuery1[T1]) Close()         { q.core.release() }

// EntityComponentQuery2 is EntityComponentQuery1 for two required
// components.
type EntityComponentQuery2[T1, T2 any] struct {
	core entityComponentQueryCore
}

func NewEntityComponentQuery2[T1, T2 any](s *Store, entities []Entity) *EntityComponentQuery2[T1, T2] {
	return &EntityComponentQuery2[T1, T2]{
		core: newEntityComponentQueryCore(s, []ComponentID{componentIDOf[T1](), componentIDOf[T2]()}, entities),
	}
}

func (q *EntityComponentQuery2[T1, T2]) Next() bool {
	if !q.core.initialized {
		q.core.init()
	}
	return q.core.next()
}

func (q *EntityComponentQuery2[T1, T2]) Get() (*T1, *T2) {
	r := q.core.currentRange()
	row := q.core.currentRow()
	return columnAt[T1](r.page, r.offsets[0], row), columnAt[T2](r.page, r.offsets[1], row)
}

func (q *EntityComponentQuery2[T1, T2]) Entity() Entity { return q.core.currentEntity() }
func (q *EntityComponentQuery2[T1, T2]) Close()         { q.core.release() }

// EntityComponentQuery3 is EntityComponentQuery1 for three required
// components.
type EntityComponentQuery3[T1, T2, T3 any] struct {
	core entityComponentQueryCore
}

func NewEntityComponentQuery3[T1, T2, T3 any](s *Store, entities []Entity) *EntityComponentQuery3[T1, T2, T3] {
	return &EntityComponentQuery3[T1, T2, T3]{
		core: newEntityComponentQueryCore(
			s, []ComponentID{componentIDOf[T1](), componentIDOf[T2](), componentIDOf[T3]()}, entities,
		),
	}
}

func (q *EntityComponentQuery3[T1, T2, T3]) Next() bool {
	if !q.core.initialized {
		q.core.init()
	}
	return q.core.next()
}

func (q *EntityComponentQuery3[T1, T2, T3]) Get() (*T1, *T2, *T3) {
	r := q.core.currentRange()
	row := q.core.currentRow()
	return columnAt[T1](r.page, r.offsets[0], row),
		columnAt[T2](r.page, r.offsets[1], row),
		columnAt[T3](r.page, r.offsets[2], row)
}

func (q *EntityComponentQuery3[T1, T2, T3]) Entity() Entity { return q.core.currentEntity() }
func (q *EntityComponentQuery3[T1, T2, T3]) Close()         { q.core.release() }

// EntityComponentQuery4 is EntityComponentQuery1 for four required
// components.
type EntityComponentQuery4[T1, T2, T3, T4 any] struct {
	core entityComponentQueryCore
}

func NewEntityComponentQuery4[T1, T2, T3, T4 any](s *Store, entities []Entity) *EntityComponentQuery4[T1, T2, T3, T4] {
	return &EntityComponentQuery4[T1, T2, T3, T4]{
		core: newEntityComponentQueryCore(s, []ComponentID{
			componentIDOf[T1](), componentIDOf[T2](), componentIDOf[T3](), componentIDOf[T4](),
		}, entities),
	}
}

func (q *EntityComponentQuery4[T1, T2, T3, T4]) Next() bool {
	if !q.core.initialized {
		q.core.init()
	}
	return q.core.next()
}

func (q *EntityComponentQuery4[T1, T2, T3, T4]) Get() (*T1, *T2, *T3, *T4) {
	r := q.core.currentRange()
	row := q.core.currentRow()
	return columnAt[T1](r.page, r.offsets[0], row),
		columnAt[T2](r.page, r.offsets[1], row),
		columnAt[T3](r.page, r.offsets[2], row),
		columnAt[T4](r.page, r.offsets[3], row)
}

func (q *EntityComponentQuery4[T1, T2, T3, T4]) Entity() Entity { return q.core.currentEntity() }
func (q *EntityComponentQuery4[T1, T2, T3, T4]) Close()         { q.core.release() }
