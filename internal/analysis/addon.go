package analysis

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/lvezzaro/buildsweep/internal/filesystem"
)

const addonFileName = "misra_addon.json"

// addonDescriptor is the rule-addon configuration handed to the analysis
// engine unmodified: the addon script plus its rule-text reference.
type addonDescriptor struct {
	Script string   `json:"script"`
	Args   []string `json:"args,omitempty"`
}

// WriteAddonFile writes the MISRA addon descriptor into dir and returns its
// path. rulesPath may be empty, in which case the addon runs without rule
// texts and reports rule numbers only.
func WriteAddonFile(fsys filesystem.FileSystem, dir, rulesPath string) (string, error) {
	desc := addonDescriptor{Script: "misra.py"}
	if rulesPath != "" {
		desc.Args = []string{"--rule-texts=" + rulesPath}
	}

	data, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal addon descriptor: %w", err)
	}

	path := filepath.Join(dir, addonFileName)
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write addon descriptor: %w", err)
	}

	return path, nil
}
