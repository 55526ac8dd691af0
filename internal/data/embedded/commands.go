// Package embedded provides access to the embedded command catalogue data.
package embedded

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"gridshell/pkg/gridtypes"
)

// CommandCatalogData contains the embedded command catalogue YAML data.
//
//go:embed commands.yaml
var CommandCatalogData []byte

// catalogFile mirrors the YAML document structure.
type catalogFile struct {
	Suggestions []gridtypes.CommandSuggestion `yaml:"suggestions"`
}

// LoadCommandCatalog decodes the embedded catalogue into suggestion entries.
func LoadCommandCatalog() ([]gridtypes.CommandSuggestion, error) {
	var file catalogFile
	if err := yaml.Unmarshal(CommandCatalogData, &file); err != nil {
		return nil, fmt.Errorf("failed to parse embedded command catalogue: %w", err)
	}
	return file.Suggestions, nil
}
