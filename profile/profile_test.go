package profile

import (
	"slices"
	"testing"
)

func TestStartDisabled(t *testing.T) {
	tests := []struct {
		name string
		p    Profiler
	}{
		{"zero", Profiler{}},
		{"unknown mode", Profiler{Mode: "nonsense", Path: t.TempDir()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := tt.p.Start()
			if _, ok := ctrl.(ignore); !ok {
				t.Errorf("Start() = %T, want no-op", ctrl)
			}

			ctrl.Stop()
		})
	}
}

func TestModesSorted(t *testing.T) {
	if m := Modes(); !slices.IsSorted(m) {
		t.Errorf("Modes() = %v, not sorted", m)
	}
}
