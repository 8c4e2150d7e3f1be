package archgrid

import "unsafe"

// archetypeDataPage is a fixed-size slab holding one archetype's component
// columns in struct-of-arrays layout, plus a parallel slice of the entity
// ids occupying each row. Its byte buffer is allocated once and never
// resized; rows are added/removed by appending/swap-removing the id slice
// and moving raw bytes, never by reallocating the buffer.
type archetypeDataPage struct {
	buf       []byte
	entityIDs []uint32
	layout    *ArchetypeLayout
}

func newArchetypeDataPage(pageSize int) *archetypeDataPage {
	return &archetypeDataPage{buf: make([]byte, pageSize)}
}

// bind (re)associates a page with an archetype's layout, as happens when a
// freed page is pulled off the free list for a different archetype. It
// does not zero the byte buffer: a new row's component bytes hold whatever
// a previous occupant left there until a value is written or a migration
// copies into them.
func (p *archetypeDataPage) bind(layout *ArchetypeLayout) {
	p.layout = layout
	if cap(p.entityIDs) < layout.entitiesPerPage {
		p.entityIDs = make([]uint32, 0, layout.entitiesPerPage)
	} else {
		p.entityIDs = p.entityIDs[:0]
	}
}

func (p *archetypeDataPage) rowCount() int    { return len(p.entityIDs) }
func (p *archetypeDataPage) capacity() int    { return p.layout.entitiesPerPage }
func (p *archetypeDataPage) hasFreeRow() bool { return p.rowCount() < p.capacity() }

// addEntityRow appends id as a new row and returns its row index. The
// caller must have already verified hasFreeRow.
func (p *archetypeDataPage) addEntityRow(id uint32) int {
	p.entityIDs = append(p.entityIDs, id)
	return len(p.entityIDs) - 1
}

// swapRemoveRow deletes row by moving the page's last row into its place,
// mirroring the column bytes as well as the id. It reports the id that was
// moved (the caller must fix up that entity's recorded row) and whether a
// move actually happened (false when row was already last).
func (p *archetypeDataPage) swapRemoveRow(row int, components []ComponentType, offsets []uintptr) (movedID uint32, moved bool) {
	last := len(p.entityIDs) - 1
	if row != last {
		movedID = p.entityIDs[last]
		for i, c := range components {
			if c.size == 0 {
				continue
			}
			off := offsets[i]
			size := c.size
			srcStart := off + size*uintptr(last)
			dstStart := off + size*uintptr(row)
			copy(p.buf[dstStart:dstStart+size], p.buf[srcStart:srcStart+size])
		}
		p.entityIDs[row] = movedID
		moved = true
	}
	p.entityIDs = p.entityIDs[:last]
	return movedID, moved
}

// copyColumnsInto copies the values of every component shared between src
// (this page, at srcRow) and dst (at dstRow), matched by ComponentID. Used
// when an entity migrates to a page belonging to a different archetype:
// components both archetypes carry survive the move, the rest are left to
// the caller (new columns uninitialized, dropped columns simply not
// copied).
func (p *archetypeDataPage) copyColumnsInto(
	dst *archetypeDataPage, srcRow, dstRow int,
	srcComponents []ComponentType, srcOffsets []uintptr,
	dstComponents []ComponentType, dstOffsets []uintptr,
) {
	j := 0
	for i, sc := range srcComponents {
		for j < len(dstComponents) && dstComponents[j].id < sc.id {
			j++
		}
		if j >= len(dstComponents) || dstComponents[j].id != sc.id || sc.size == 0 {
			continue
		}
		size := sc.size
		srcStart := srcOffsets[i] + size*uintptr(srcRow)
		dstStart := dstOffsets[j] + size*uintptr(dstRow)
		copy(dst.buf[dstStart:dstStart+size], p.buf[srcStart:srcStart+size])
	}
}

// writeValue copies size bytes from src into the column at offset, row.
func (p *archetypeDataPage) writeValue(offset uintptr, row int, size uintptr, src unsafe.Pointer) {
	if size == 0 {
		return
	}
	dstStart := offset + size*uintptr(row)
	dst := unsafe.Slice((*byte)(p.basePtr(dstStart)), size)
	copy(dst, unsafe.Slice((*byte)(src), size))
}

// basePtr computes a raw pointer offset bytes past the start of the page
// buffer, using pointer arithmetic rather than slice indexing so that a
// one-past-the-end offset (reachable for zero-sized components) stays a
// legal address instead of panicking on an out-of-range index.
func (p *archetypeDataPage) basePtr(offset uintptr) unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(&p.buf[0]), offset)
}

// columnAt returns a typed pointer into the page's raw buffer for the
// column starting at offset, row index row. The pointer stays valid as
// long as the page's buf is not reallocated, which never happens after
// construction.
func columnAt[T any](p *archetypeDataPage, offset uintptr, row int) *T {
	var zero T
	size := unsafe.Sizeof(zero)
	idx := offset + size*uintptr(row)
	return (*T)(p.basePtr(idx))
}
