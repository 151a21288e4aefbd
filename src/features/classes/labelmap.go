package classes

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LabelmapFile is the friendly-name map stored in the project base
// directory.
const LabelmapFile = ".labelmap.json"

// LoadLabelmap reads the class→friendly-name map of a project. A missing or
// corrupt file loads as an empty map; friendly names are display sugar, not
// state worth failing over.
func LoadLabelmap(base string) map[string]string {
	data, err := os.ReadFile(filepath.Join(base, LabelmapFile))
	if err != nil {
		return map[string]string{}
	}
	var mapping map[string]string
	if err := json.Unmarshal(data, &mapping); err != nil {
		return map[string]string{}
	}
	return mapping
}

// SaveLabelmap writes the friendly-name map, pretty printed.
func SaveLabelmap(base string, mapping map[string]string) error {
	data, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode labelmap: %w", err)
	}
	if err := os.WriteFile(filepath.Join(base, LabelmapFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write labelmap: %w", err)
	}
	return nil
}
