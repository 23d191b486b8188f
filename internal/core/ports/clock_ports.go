package ports

import "time"

// Clock is the scheduler abstraction the engine uses for "now" and for
// debounced work. Tests swap in a fake that advances manually.
type Clock interface {
	Now() time.Time
	// AfterFunc runs fn once after d. The returned Timer cancels it.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a pending AfterFunc call.
type Timer interface {
	// Stop prevents the call from firing. It reports whether the call was
	// still pending.
	Stop() bool
}
