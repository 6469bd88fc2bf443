// Package memory is the engine's allocation entry point.
//
// A System wraps one alloc.Dynamic and adds three things on top of it:
//
//   - Tag accounting: every allocation names a Tag, and the System keeps a
//     byte counter per tag plus a total. Tags are diagnostics only and never
//     affect placement.
//   - Zero-initialization: memory returned by Allocate is always zeroed.
//   - Failure reporting: allocation and free failures are logged at
//     logger.LevelFatal and returned. The System never retries, compacts, or
//     exits the process; callers decide whether a failure is fatal.
//
// # Lifecycle
//
// One System exists per engine. It is built once during bootstrap from an
// arena sized with RequiredSize, and shut down once:
//
//	cfg := memory.DefaultConfig()
//	arena, _ := alloc.NewBump(make([]byte, memory.RequiredSize(cfg)))
//	sys, err := memory.New(arena, cfg)
//	if err != nil {
//	    return err
//	}
//	defer sys.Shutdown()
//
//	b, err := sys.Allocate(128, memory.TagString)
//	...
//	err = sys.Free(b)
//
// Free decrements the tag counters before handing the block back to the
// allocator. If the allocator rejects the block the counters stay
// decremented.
//
// # Thread Safety
//
// A System is not thread-safe. Callers must synchronize access externally.
package memory
