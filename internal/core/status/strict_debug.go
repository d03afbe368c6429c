//go:build debug

package status

// failFast makes an undefined transition panic so the defect surfaces during
// development instead of being masked by the release no-op path.
const failFast = true
