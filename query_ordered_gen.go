package archgrid

// OrderedComponentQuery1 walks a GroupID's order list from its head,
// yielding entities in that order which carry T1.
type OrderedComponentQuery1[T1 any] struct {
	core orderedComponentQueryCore
}

func NewOrderedComponentQuery1[T1 any](s *Store, group GroupID) *OrderedComponentQuery1[T1] {
	return &OrderedComponentQuery1[T1]{
		core: newOrderedComponentQueryCore(s, []ComponentID{componentIDOf[T1]()}, group),
	}
}

func (q *OrderedComponentQuery1[T1]) Next() bool {
	if !q.core.initialized {
		q.core.init()
	}
	return q.core.next()
}

func (q *OrderedComponentQuery1[T1]) Get() *T1 {
	v := q.core.currentView()
	return columnAt[T1](v.page, v.offsets[0], v.startRow+q.core.row)
}

func (q *OrderedComponentQuery1[T1]) Entity() Entity { return q.core.currentEntity() }
func (q *OrderedComponentQuery1[T1]) Close()         { q.core.release() }

// OrderedComponentQuery2 is OrderedComponentQuery1 for two required
// components.
type OrderedComponentQuery2[T1, T2 any] struct {
	core orderedComponentQueryCore
}

func NewOrderedComponentQuery2[T1, T2 any](s *Store, group GroupID) *OrderedComponentQuery2[T1, T2] {
	return &OrderedComponentQuery2[T1, T2]{
		core: newOrderedComponentQueryCore(s, []ComponentID{componentIDOf[T1](), componentIDOf[T2]()}, group),
	}
}

func (q *OrderedComponentQuery2[T1, T2]) Next() bool {
	if !q.core.initialized {
		q.core.init()
	}
	return q.core.next()
}

func (q *OrderedComponentQuery2[T1, T2]) Get() (*T1, *T2) {
	v := q.core.currentView()
	row := v.startRow + q.core.row
	return columnAt[T1](v.page, v.offsets[0], row), columnAt[T2](v.page, v.offsets[1], row)
}

func (q *OrderedComponentQuery2[T1, T2]) Entity() Entity { return q.core.currentEntity() }
func (q *OrderedComponentQuery2[T1, T2]) Close()         { q.core.release() }

// OrderedComponentQuery3 is OrderedComponentQuery1 for three required
// components.
type OrderedComponentQuery3[T1, T2, T3 any] struct {
	core orderedComponentQueryCore
}

func NewOrderedComponentQuery3[T1, T2, T3 any](s *Store, group GroupID) *OrderedComponentQuery3[T1, T2, T3] {
	return &OrderedComponentQuery3[T1, T2, T3]{
		core: newOrderedComponentQueryCore(
			s, []ComponentID{componentIDOf[T1](), componentIDOf[T2](), componentIDOf[T3]()}, group,
		),
	}
}

func (q *OrderedComponentQuery3[T1, T2, T3]) Next() bool {
	if !q.core.initialized {
		q.core.init()
	}
	return q.core.next()
}

func (q *OrderedComponentQuery3[T1, T2, T3]) Get() (*T1, *T2, *T3) {
	v := q.core.currentView()
	row := v.startRow + q.core.row
	return columnAt[T1](v.page, v.offsets[0], row),
		columnAt[T2](v.page, v.offsets[1], row),
		columnAt[T3](v.page, v.offsets[2], row)
}

func (q *OrderedComponentQuery3[T1, T2, T3]) Entity() Entity { return q.core.currentEntity() }
func (q *OrderedComponentQuery3[T1, T2, T3]) Close()         { q.core.release() }

// OrderedComponentQuery4 is OrderedComponentQuery1 for four required
// components.
type OrderedComponentQuery4[T1, T2, T3, T4 any] struct {
	core orderedComponentQueryCore
}

func NewOrderedComponentQuery4[T1, T2, T3, T4 any](s *Store, group GroupID) *OrderedComponentQuery4[T1, T2, T3, T4] {
	return &OrderedComponentQuery4[T1, T2, T3, T4]{
		core: newOrderedComponentQueryCore(s, []ComponentID{
			componentIDOf[T1](), componentIDOf[T2](), componentIDOf[T3](), componentIDOf[T4](),
		}, group),
	}
}

func (q *OrderedComponentQuery4[T1, T2, T3, T4]) Next() bool {
	if !q.core.initialized {
		q.core.init()
	}
	return q.core.next()
}

func (q *OrderedComponentQuery4[T1, T2, T3, T4]) Get() (*T1, *T2, *T3, *T4) {
	v := q.core.currentView()
	row := v.startRow + q.core.row
	return columnAt[T1](v.page, v.offsets[0], row),
		columnAt[T2](v.page, v.offsets[1], row),
		columnAt[T3](v.page, v.offsets[2], row),
		columnAt[T4](v.page, v.offsets[3], row)
}

func (q *OrderedComponentQuery4[T1, T2, T3, T4]) Entity() Entity { return q.core.currentEntity() }
func (q *OrderedComponentQuery4[T1, T2, T3, T4]) Close()         { q.core.release() }
