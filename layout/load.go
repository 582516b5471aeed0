package layout

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load decodes a layout from r. Unknown fields are rejected.
func Load(r io.Reader) (*Report, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var rep Report
	if err := dec.Decode(&rep); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode layout: empty document")
		}
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	return &rep, nil
}

// LoadFile decodes the layout stored at path.
func LoadFile(path string) (*Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout %q: %w", path, err)
	}
	rep, err := Load(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rep, nil
}

// LoadData reads the YAML map of values that ${...} placeholders are
// evaluated against.
func LoadData(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data %q: %w", path, err)
	}
	data := make(map[string]any)
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode data %q: %w", path, err)
	}
	return data, nil
}
