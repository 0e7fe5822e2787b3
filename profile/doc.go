// Package profile provides optional runtime profiling for plx.
//
// # Overview
//
// This package wraps [github.com/pkg/profile] behind the "pprof" build tag.
// Without the tag, [Modes] is empty and [Profiler.Start] returns a no-op
// handle, so callers never need their own build constraints.
//
// # Modes
//
// With the tag, [Modes] returns:
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     blocking on synchronization primitives
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine stacks
//   - heap:      live heap allocations
//   - mem:       general memory profiling
//   - mutex:     mutex contention
//   - thread:    thread creation
//   - trace:     execution trace
//
// # Usage
//
//	p := profile.New(
//	    profile.WithMode("cpu"),
//	    profile.WithPath("/tmp/profiles"),
//	)
//	defer p.Start().Stop()
//
// Profiles are written to the directory as <mode>.pprof (trace.out for the
// execution trace).
//
// # Command Line
//
//	go build -tags pprof -o plx .
//	plx --pprof-mode cpu resolve examples/sensor-access.plx
//	go tool pprof -http=: ~/.cache/plx/pprof/cpu.pprof
//
// The tagged build also imports [net/http/pprof], which registers its
// handlers on [net/http.DefaultServeMux] for programs that serve it.
package profile
