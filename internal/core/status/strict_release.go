//go:build !debug

package status

// failFast is disabled in release builds: an undefined transition is logged
// and treated as a no-op instead of crashing the session.
const failFast = false
