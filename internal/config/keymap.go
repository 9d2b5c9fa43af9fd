package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// KeyRemap maps one input key name to another.
type KeyRemap struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Keymap is the YAML key remapping file.
type Keymap struct {
	Remap []KeyRemap `yaml:"remap"`
}

// ParseKeymap parses a YAML keymap document.
func ParseKeymap(data []byte) (Keymap, error) {
	var km Keymap
	if err := yaml.Unmarshal(data, &km); err != nil {
		return Keymap{}, fmt.Errorf("parse keymap: %w", err)
	}
	for i, r := range km.Remap {
		if r.From == "" || r.To == "" {
			return Keymap{}, fmt.Errorf("parse keymap: entry %d needs both from and to", i)
		}
	}
	return km, nil
}

// LoadKeymap reads a keymap file. A missing file yields an empty keymap.
func LoadKeymap(path string) (Keymap, error) {
	if path == "" {
		return Keymap{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Keymap{}, nil
		}
		return Keymap{}, fmt.Errorf("read keymap %s: %w", path, err)
	}
	return ParseKeymap(data)
}

// MarshalYAML renders all settings as a YAML mapping, for display.
func (s *Settings) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range Names() {
		v, _ := s.Lookup(name)
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: v},
		)
	}
	return node, nil
}
