package form

import (
	"encoding/json"
	"fmt"
	"os"

	"formkit/log"
)

// PresetError reports a preset file that could not be read or written.
type PresetError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *PresetError) Error() string {
	return fmt.Sprintf("preset %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PresetError) Unwrap() error { return e.Err }

// SavePreset writes the persistable fields of r to path as a flat JSON
// object mapping field key to value. There is no schema versioning.
func SavePreset(path string, r *Registry) error {
	m := make(Model)
	for _, f := range r.Fields() {
		if f.Persistable() {
			m[f.Key()] = f.Value()
		}
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return &PresetError{Op: "save", Path: path, Err: err}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return &PresetError{Op: "save", Path: path, Err: err}
	}
	log.Info("preset saved", log.String("path", path), log.Int("fields", len(m)))
	return nil
}

// LoadPreset reads a flat JSON preset and applies each present key onto
// the matching field. Keys missing from the file leave the field at its
// prior value (logged, non-fatal); only unreadable or malformed files
// return an error.
func LoadPreset(path string, r *Registry) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &PresetError{Op: "load", Path: path, Err: err}
	}
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return &PresetError{Op: "load", Path: path, Err: err}
	}
	r.Apply(m)
	log.Info("preset loaded", log.String("path", path), log.Int("fields", len(m)))
	return nil
}
