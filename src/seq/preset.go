package seq

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ----- Presets ----- //

// PresetManager persists parameter snapshots as one JSON file per preset in
// a directory. Numeric parameters are stored as numbers, string parameters
// as strings; unknown keys in a loaded file are ignored by Store.Set.
type PresetManager struct {
	dir string
}

func NewPresetManager(dir string) *PresetManager {
	return &PresetManager{dir: dir}
}

// List returns the preset names present on disk, sorted.
func (pm *PresetManager) List() ([]string, error) {
	entries, err := os.ReadDir(pm.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Save writes the store's current values under the given name.
func (pm *PresetManager) Save(name string, store *Store) error {
	if err := os.MkdirAll(pm.dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(store.Snapshot(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(pm.path(name), data, 0o644)
}

// Load applies a saved preset to the store. Every parameter set fires the
// usual change listeners, so loading a preset rebuilds the patterns exactly
// as if the values had been entered by hand.
func (pm *PresetManager) Load(name string, store *Store) error {
	data, err := os.ReadFile(pm.path(name))
	if err != nil {
		return err
	}
	var values map[string]interface{}
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	// Deterministic application order.
	names := make([]string, 0, len(values))
	for key := range values {
		names = append(names, key)
	}
	sort.Strings(names)
	for _, key := range names {
		store.Set(key, values[key])
	}
	return nil
}

func (pm *PresetManager) path(name string) string {
	return filepath.Join(pm.dir, name+".json")
}
