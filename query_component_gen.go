package archgrid

// ComponentQuery1 iterates every row of every archetype carrying T1, in
// archetype/page/row order (no particular entity order is guaranteed
// beyond that).
type ComponentQuery1[T1 any] struct {
	core componentQueryCore
}

// NewComponentQuery1 builds a ComponentQuery1 against s. Call Next to
// initialize and advance it.
func NewComponentQuery1[T1 any](s *Store) *ComponentQuery1[T1] {
	return &ComponentQuery1[T1]{core: newComponentQueryCore(s, []ComponentID{componentIDOf[T1]()})}
}

// Next advances to the next matching row, initializing the query on its
// first call. It returns false once nothing remains.
func (q *ComponentQuery1[T1]) Next() bool {
	if !q.core.initialized {
		q.core.init()
	}
	return q.core.next()
}

// Get returns a pointer to T1 at the current row.
func (q *ComponentQuery1[T1]) Get() *T1 {
	v := q.core.currentView()
	return columnAt[T1](v.page, v.offsets[0], v.startRow+q.core.row)
}

// Entity returns the entity occupying the current row.
func (q *ComponentQuery1[T1]) Entity() Entity { return q.core.currentEntity() }

// FilterTag restricts iteration to rows whose entity also carries tag.
func (q *ComponentQuery1[T1]) FilterTag(tag TagID) *ComponentQuery1[T1] {
	q.core.hasTagFilter = true
	q.core.tagFilter = tag
	return q
}

// Len returns the total number of rows the query matches, ignoring any
// tag filter and how far iteration has already advanced.
func (q *ComponentQuery1[T1]) Len() int {
	if !q.core.initialized {
		q.core.init()
	}
	return q.core.len()
}

// ComponentQuery2 iterates every row of every archetype carrying both T1
// and T2.
type ComponentQuery2[T1, T2 any] struct {
	core componentQueryCore
}

func NewComponentQuery2[T1, T2 any](s *Store) *ComponentQuery2[T1, T2] {
	return &ComponentQuery2[T1, T2]{
		core: newComponentQueryCore(s, []ComponentID{componentIDOf[T1](), componentIDOf[T2]()}),
	}
}

func (q *ComponentQuery2[T1, T2]) Next() bool {
	if !q.core.initialized {
		q.core.init()
	}
	return q.core.next()
}

func (q *ComponentQuery2[T1, T2]) Get() (*T1, *T2) {
	v := q.core.currentView()
	row := v.startRow + q.core.row
	return columnAt[T1](v.page, v.offsets[0], row), columnAt[T2](v.page, v.offsets[1], row)
}

func (q *ComponentQuery2[T1, T2]) Entity() Entity { return q.core.currentEntity() }

func (q *ComponentQuery2[T1, T2]) FilterTag(tag TagID) *ComponentQuery2[T1, T2] {
	q.core.hasTagFilter = true
	q.core.tagFilter = tag
	return q
}

func (q *ComponentQuery2[T1, T2]) Len() int {
	if !q.core.initialized {
		q.core.init()
	}
	return q.core.len()
}

// ComponentQuery3 iterates every row of every archetype carrying T1, T2
// and T3.
type ComponentQuery3[T1, T2, T3 any] struct {
	core componentQueryCore
}

func NewComponentQuery3[T1, T2, T3 any](s *Store) *ComponentQuery3[T1, T2, T3] {
	return &ComponentQuery3[T1, T2, T3]{
		core: newComponentQueryCore(s, []ComponentID{componentIDOf[T1](), componentIDOf[T2](), componentIDOf[T3]()}),
	}
}

func (q *ComponentQuery3[T1, T2, T3]) Next() bool {
	if !q.core.initialized {
		q.core.init()
	}
	return q.core.next()
}

func (q *ComponentQuery3[T1, T2, T3]) Get() (*T1, *T2, *T3) {
	v := q.core.currentView()
	row := v.startRow + q.core.row
	return columnAt[T1](v.page, v.offsets[0], row),
		columnAt[T2](v.page, v.offsets[1], row),
		columnAt[T3](v.page, v.offsets[2], row)
}

func (q *ComponentQuery3[T1, T2, T3]) Entity() Entity { return q.core.currentEntity() }

func (q *ComponentQuery3[T1, T2, T3]) FilterTag(tag TagID) *ComponentQuery3[T1, T2, T3] {
	q.core.hasTagFilter = true
	q.core.tagFilter = tag
	return q
}

func (q *ComponentQuery3[T1, T2, T3]) Len() int {
	if !q.core.initialized {
		q.core.init()
	}
	return q.core.len()
}

// ComponentQuery4 iterates every row of every archetype carrying T1, T2,
// T3 and T4.
type ComponentQuery4[T1, T2, T3, T4 any] struct {
	core componentQueryCore
}

func NewComponentQuery4[T1, T2, T3, T4 any](s *Store) *ComponentQuery4[T1, T2, T3, T4] {
	return &ComponentQuery4[T1, T2, T3, T4]{
		core: newComponentQueryCore(s, []ComponentID{
			componentIDOf[T1](), componentIDOf[T2](), componentIDOf[T3](), componentIDOf[T4](),
		}),
	}
}

func (q *ComponentQuery4[T1, T2, T3, T4]) Next() bool {
	if !q.core.initialized {
		q.core.init()
	}
	return q.core.next()
}

func (q *ComponentQuery4[T1, T2, T3, T4]) Get() (*T1, *T2, *T3, *T4) {
	v := q.core.currentView()
	row := v.startRow + q.core.row
	return columnAt[T1](v.page, v.offsets[0], row),
		columnAt[T2](v.page, v.offsets[1], row),
		columnAt[T3](v.page, v.offsets[2], row),
		columnAt[T4](v.page, v.offsets[3], row)
}

func (q *ComponentQuery4[T1, T2, T3, T4]) Entity() Entity { return q.core.currentEntity() }

func (q *ComponentQuery4[T1, T2, T3, T4]) FilterTag(tag TagID) *ComponentQuery4[T1, T2, T3, T4] {
	q.core.hasTagFilter = true
	q.core.tagFilter = tag
	return q
}

func (q *ComponentQuery4[T1, T2, T3, T4]) Len() int {
	if !q.core.initialized {
		q.core.init()
	}
	return q.core.len()
}

// Close releases the query's lock on the store early, for callers that
// stop iterating before Next returns false. Calling it after exhaustion,
// or more than once, is a no-op.
func (q *ComponentQuery1[T1]) Close()             { q.core.release() }
func (q *ComponentQuery2[T1, T2]) Close()         { q.core.release() }
func (q *ComponentQuery3[T1, T2, T3]) Close()     { q.core.release() }
func (q *ComponentQuery4[T1, T2, T3, T4]) Close() { q.core.release() }
