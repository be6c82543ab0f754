// Package cache provides the look-aside cache used for cursor renderers and
// converted frame buffers.
//
// Readers share an RWMutex read lock; population computes the value outside
// the lock and inserts it under the write lock:
//
//	c := cache.New[string, *Renderer]()
//	r, err := c.Load("wait", func() (*Renderer, error) {
//	    return build("wait")
//	})
//
// Two goroutines missing on the same key may both run the build function.
// The first value inserted wins and is returned to both callers, so builders
// must be pure functions of their inputs.
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
