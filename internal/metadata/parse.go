package metadata

import (
	"fmt"
	"os"

	"github.com/clbanning/mxj/v2"
)

// textKey is where mxj stores character data of an element that also
// carries attributes.
const textKey = "#text"

// Parse decodes the raw bytes of a metadata file into a generic tree.
// Repeated child elements become []any, single children become a bare
// value; the normalizer in this package accepts either form.
func Parse(data []byte) (map[string]any, error) {
	m, err := mxj.NewMapXml(data)
	if err != nil {
		return nil, err
	}
	return map[string]any(m), nil
}

// ParseFile reads and parses one metadata file.
func ParseFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tree, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return tree, nil
}
