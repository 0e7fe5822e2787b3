//go:build !pprof

package profile

// Modes returns nil: no profiling modes are available without the pprof
// build tag.
func Modes() []string { return nil }

func start(Profiler) interface{ Stop() } { return ignore{} }
