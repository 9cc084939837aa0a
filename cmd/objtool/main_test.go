package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/meshview/internal/engine/controls"
	"github.com/Faultbox/meshview/internal/engine/transform"
	"github.com/Faultbox/meshview/pkg/formats"
)

func defaultSimulation(frames int) simulation {
	return simulation{
		frames: frames,
		mode:   transform.ModeAccumulate,
		steps:  controls.DefaultSteps(),
	}
}

func TestRunSimulate_MissingFile(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "nonexistent.obj")

	err := runSimulate(&out, path, defaultSimulation(2))
	if !errors.Is(err, formats.ErrOpenOBJ) {
		t.Fatalf("expected ErrOpenOBJ, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be printed for a missing file, got %q", out.String())
	}
}

func TestRunSimulate_IndexOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.obj")
	if err := os.WriteFile(path, []byte("v 0 0 0\nf 1 2 3\n"), 0644); err != nil {
		t.Fatalf("failed to write test OBJ: %v", err)
	}

	err := runSimulate(&bytes.Buffer{}, path, defaultSimulation(1))
	if !errors.Is(err, formats.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestRunSimulate_Triangle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	content := "v -1 -1 0\nv 1 -1 0\nv 0 2 0\nv 1 2\nf 1 2 3\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test OBJ: %v", err)
	}

	sim := defaultSimulation(4)
	sim.actions.Set(controls.RotateCCW, true)

	var out bytes.Buffer
	if err := runSimulate(&out, path, sim); err != nil {
		t.Fatalf("runSimulate failed: %v", err)
	}

	for _, want := range []string{
		"Frames:      4 (accumulate)",
		"Skipped:     1 lines",
		"Angle:       2.0000 deg",
		"Model matrix:",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}
