// Package freelist tracks free and used byte ranges over an abstract
// [0, size) address space.
//
// # Overview
//
// A Tracker keeps a singly linked, offset-ordered list of free blocks. Blocks
// never overlap and are never adjacent: freeing a range next to an existing
// free block merges the two. Allocation is first-fit and always consumes from
// the front of the chosen block.
//
// # Node Pool
//
// List nodes live in a fixed-capacity slot map laid out in a caller-supplied
// byte slab. Each slot is a 24-byte little-endian record:
//
//	0x00  offset  u64
//	0x08  length  u64
//	0x10  next    u32  (slot index + 1, 0 = end of list)
//	0x14  state   u32  (0 = free, 1 = live)
//
// followed by a stack of u32 free slot indices. Allocate and Free never
// allocate Go memory; when every slot is live, a Free that cannot merge into a
// neighbor fails with ErrNodePoolExhausted instead of dropping the range.
//
// # Sizing
//
// Storage is sized up front with RequiredSize and handed to New:
//
//	n := freelist.RequiredSize(1024, 0)
//	fl, err := freelist.New(1024, 0, make([]byte, n))
//	if err != nil {
//	    return err
//	}
//
//	off, err := fl.Allocate(300) // off == 0
//	...
//	err = fl.Free(off, 300)
//
// # Fragmentation
//
// Allocate fails with ErrNoSpace when no single free block is large enough,
// even if the total free space would be. The tracker never compacts.
//
// # Thread Safety
//
// Trackers are not thread-safe. Callers must synchronize access externally.
package freelist
