package stores

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type document struct {
	Stores []Store `yaml:"stores"`
}

// Load parses a YAML document of the form:
//
//	stores:
//	  - name: wstore
//	    displayName: WStore
//	    url: https://store.example.com
//
// A bare top-level sequence of stores is accepted as well.
func Load(r io.Reader) (*Catalog, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("stores: read: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(content, &node); err != nil {
		return nil, fmt.Errorf("stores: parse YAML: %w", err)
	}
	if len(node.Content) == 0 {
		return NewCatalog()
	}

	var list []Store
	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&list); err != nil {
			return nil, fmt.Errorf("stores: decode list: %w", err)
		}
	default:
		var doc document
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("stores: decode document: %w", err)
		}
		list = doc.Stores
	}

	return NewCatalog(list...)
}

// LoadFile reads a catalogue from path.
func LoadFile(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stores: open %s: %w", path, err)
	}
	defer file.Close()

	return Load(file)
}
