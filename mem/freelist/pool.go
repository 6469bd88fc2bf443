package freelist

import "github.com/joshuapare/enginemem/internal/buf"

const (
	slotSize  = 24
	indexSize = 4

	fieldOffset = 0x00
	fieldLength = 0x08
	fieldNext   = 0x10
	fieldState  = 0x14

	stateFree uint32 = 0
	stateLive uint32 = 1
)

// ref names a slot as index+1 so the zero value means "no node".
type ref uint32

func (r ref) slot() int { return int(r) - 1 }

// pool is a fixed-capacity slot map over a byte slab plus a stack of free
// slot indices.
type pool struct {
	slots    []byte
	stack    []byte
	capacity int
	top      int // free indices currently on the stack
}

func newPool(slab []byte, capacity int) pool {
	slotsLen := capacity * slotSize
	p := pool{
		slots:    slab[:slotsLen:slotsLen],
		stack:    slab[slotsLen : slotsLen+capacity*indexSize],
		capacity: capacity,
	}
	p.reset()
	return p
}

// reset marks every slot free. Index 0 ends up on top of the stack.
func (p *pool) reset() {
	clear(p.slots)
	p.top = 0
	for i := p.capacity - 1; i >= 0; i-- {
		buf.PutU32At(p.stack, p.top*indexSize, uint32(i))
		p.top++
	}
}

// acquire pops a free slot and marks it live.
func (p *pool) acquire() (ref, bool) {
	if p.top == 0 {
		return 0, false
	}
	p.top--
	idx := int(buf.U32At(p.stack, p.top*indexSize))
	r := ref(idx + 1)
	p.setState(r, stateLive)
	return r, true
}

// release clears a live slot and pushes it back on the stack.
func (p *pool) release(r ref) {
	base := r.slot() * slotSize
	clear(p.slots[base : base+slotSize])
	buf.PutU32At(p.stack, p.top*indexSize, uint32(r.slot()))
	p.top++
}

func (p *pool) live() int { return p.capacity - p.top }

func (p *pool) offset(r ref) uint64 { return buf.U64At(p.slots, r.slot()*slotSize+fieldOffset) }
func (p *pool) length(r ref) uint64 { return buf.U64At(p.slots, r.slot()*slotSize+fieldLength) }
func (p *pool) next(r ref) ref      { return ref(buf.U32At(p.slots, r.slot()*slotSize+fieldNext)) }
func (p *pool) state(r ref) uint32  { return buf.U32At(p.slots, r.slot()*slotSize+fieldState) }

// end returns the exclusive end offset of the block in r.
func (p *pool) end(r ref) uint64 { return p.offset(r) + p.length(r) }

func (p *pool) setOffset(r ref, v uint64) { buf.PutU64At(p.slots, r.slot()*slotSize+fieldOffset, v) }
func (p *pool) setLength(r ref, v uint64) { buf.PutU64At(p.slots, r.slot()*slotSize+fieldLength, v) }
func (p *pool) setNext(r, n ref)          { buf.PutU32At(p.slots, r.slot()*slotSize+fieldNext, uint32(n)) }
func (p *pool) setState(r ref, v uint32)  { buf.PutU32At(p.slots, r.slot()*slotSize+fieldState, v) }

// set fills all list fields of r at once.
func (p *pool) set(r ref, off, length uint64, next ref) {
	p.setOffset(r, off)
	p.setLength(r, length)
	p.setNext(r, next)
}
