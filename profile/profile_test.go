package profile

import "testing"

func TestNew(t *testing.T) {
	got := New(WithMode("cpu"), nil, WithPath("/tmp/p"), WithQuiet(true))
	want := Profiler{Mode: "cpu", Path: "/tmp/p", Quiet: true}

	if got != want {
		t.Errorf("New() = %+v, want %+v", got, want)
	}
}

func TestProfiler_StartDisabled(t *testing.T) {
	for _, p := range []Profiler{{}, {Mode: "no-such-mode"}} {
		stop := p.Start()
		if _, ok := stop.(ignore); !ok {
			t.Errorf("Start() with mode %q = %T, want no-op", p.Mode, stop)
		}

		stop.Stop()
	}
}
