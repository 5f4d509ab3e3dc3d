package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatal(err)
	}
	if om != nil {
		t.Fatal("empty dir should disable output")
	}

	// All writes on the nil manager are no-ops.
	if err := om.WriteStep(StepStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteWindow(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteFile("x", nil); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := om.WriteStep(StepStats{Step: 1, SimTime: 0.1, NumPoints: 100}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteStep(StepStats{Step: 2, SimTime: 0.2, NumPoints: 100}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteWindow(WindowStats{WindowEndStep: 2, SimTime: 0.2, Steps: 2}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "steps.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("steps.csv has %d lines, want header + 2 records:\n%s", len(lines), data)
	}
	if !strings.Contains(lines[0], "step") || !strings.Contains(lines[0], "rho_min") {
		t.Errorf("steps.csv header missing columns: %q", lines[0])
	}
	if strings.Contains(lines[1], "step") {
		t.Errorf("header repeated in record line: %q", lines[1])
	}

	data, err = os.ReadFile(filepath.Join(dir, "windows.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines = strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("windows.csv has %d lines, want header + 1 record:\n%s", len(lines), data)
	}
}

func TestOutputManagerWriteFile(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	if err := om.WriteFile("config.yaml", []byte("grid:\n  cells: 64\n")); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "cells: 64") {
		t.Errorf("config dump content = %q", data)
	}
}
