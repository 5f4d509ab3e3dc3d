package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// OutputManager handles structured run output with CSV logging. A nil
// OutputManager is valid and discards everything, so callers don't
// guard every write.
type OutputManager struct {
	dir         string
	stepsFile   *os.File
	windowsFile *os.File

	stepsHeaderWritten   bool
	windowsHeaderWritten bool
}

// NewOutputManager creates the output directory and opens the CSV
// files. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "steps.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating steps.csv: %w", err)
	}
	om.stepsFile = f

	f, err = os.Create(filepath.Join(dir, "windows.csv"))
	if err != nil {
		om.stepsFile.Close()
		return nil, fmt.Errorf("creating windows.csv: %w", err)
	}
	om.windowsFile = f

	return om, nil
}

// Dir returns the output directory, or "" when output is disabled.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// WriteStep appends a step record to steps.csv.
func (om *OutputManager) WriteStep(stats StepStats) error {
	if om == nil {
		return nil
	}

	records := []StepStats{stats}
	if !om.stepsHeaderWritten {
		if err := gocsv.Marshal(records, om.stepsFile); err != nil {
			return fmt.Errorf("writing steps.csv: %w", err)
		}
		om.stepsHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.stepsFile); err != nil {
		return fmt.Errorf("writing steps.csv: %w", err)
	}
	return nil
}

// WriteWindow appends a window record to windows.csv.
func (om *OutputManager) WriteWindow(w WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{w}
	if !om.windowsHeaderWritten {
		if err := gocsv.Marshal(records, om.windowsFile); err != nil {
			return fmt.Errorf("writing windows.csv: %w", err)
		}
		om.windowsHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.windowsFile); err != nil {
		return fmt.Errorf("writing windows.csv: %w", err)
	}
	return nil
}

// WriteFile writes arbitrary bytes (config dump, snapshot) next to the
// CSV logs.
func (om *OutputManager) WriteFile(name string, data []byte) error {
	if om == nil {
		return nil
	}
	return os.WriteFile(filepath.Join(om.dir, name), data, 0644)
}

// Close flushes and closes the CSV files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	if err := om.stepsFile.Close(); err != nil {
		firstErr = err
	}
	if err := om.windowsFile.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
