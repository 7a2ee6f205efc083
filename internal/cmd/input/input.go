// Package input loads record files for the CLI commands.
package input

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmartinm/inspire-dojson/record"
)

// ReadRecord loads the record in the given file. Files ending in .yaml or
// .yml are parsed as YAML, everything else as JSON.
func ReadRecord(path string) (record.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return record.Value{}, fmt.Errorf("reading record file failed: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		v, err := record.DecodeYAML(data)
		if err != nil {
			return record.Value{}, fmt.Errorf("parsing YAML record %q failed: %w", path, err)
		}
		return v, nil
	default:
		v, err := record.DecodeJSON(data)
		if err != nil {
			return record.Value{}, fmt.Errorf("parsing JSON record %q failed: %w", path, err)
		}
		return v, nil
	}
}
