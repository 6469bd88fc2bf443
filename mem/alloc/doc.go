// Package alloc provides the bump arena used during engine bootstrap and the
// dynamic allocator that serves general-purpose allocations afterwards.
//
// # Overview
//
// Memory flows top-down from one region:
//
//	region ──► Bump (arena) ──► Dynamic ──► freelist.Tracker
//
// Every component that needs backing storage takes an Arena and carves what
// it needs from it. Sizes can be queried up front with pure functions
// (DynamicRequiredSize, freelist.RequiredSize), so a caller can size the
// region before anything is built.
//
// # Bump
//
// Bump hands out consecutive sub-slices of its region and never reclaims
// them individually. FreeAll rewinds to the start and zero-fills the region.
//
// # Dynamic
//
// Dynamic owns one raw memory block and a freelist.Tracker scoped to that
// block's size. Alloc returns a Block handle; the handle carries its own
// length, so Free can never be called with a size that differs from the one
// that was allocated:
//
//	n := alloc.DynamicRequiredSize(64<<10, 0)
//	arena, err := alloc.NewBump(make([]byte, n))
//	if err != nil {
//	    return err
//	}
//	d, err := alloc.NewDynamic(arena, 64<<10, nil)
//	if err != nil {
//	    return err
//	}
//
//	b, err := d.Alloc(256)
//	if err != nil {
//	    return err
//	}
//	copy(b.Bytes(), payload)
//	err = d.Free(b)
//
// Dynamic never retries, grows, or compacts. A failed Alloc is reported to
// the caller, who decides whether it is fatal.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Callers must synchronize access
// externally.
//
// # Related Packages
//
//   - github.com/joshuapare/enginemem/mem/freelist: Offset tracking behind Dynamic
//   - github.com/joshuapare/enginemem/mem/memory: Tagged facade over Dynamic
//   - github.com/joshuapare/enginemem/mem/region: OS-backed memory for the bump arena
package alloc
