package assets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path"

	"gopkg.in/yaml.v3"
)

// Asset is one file in a bundle, addressed by alias once loaded.
type Asset struct {
	Alias string `json:"alias" yaml:"alias"`
	Src   string `json:"src" yaml:"src"`
}

// Bundle groups the assets a screen needs before it can be shown.
type Bundle struct {
	Name   string  `json:"name" yaml:"name"`
	Assets []Asset `json:"assets" yaml:"assets"`
}

// Manifest lists every bundle the game knows about.
type Manifest struct {
	Bundles []Bundle `json:"bundles" yaml:"bundles"`
}

// LoadJSON decodes a manifest from a JSON reader.
func LoadJSON(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadYAML decodes a manifest from a YAML reader.
func LoadYAML(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ParseManifest picks the decoder from the file extension of name.
func ParseManifest(name string, data []byte) (*Manifest, error) {
	var (
		m   *Manifest
		err error
	)
	switch ext := path.Ext(name); ext {
	case ".json":
		m, err = LoadJSON(bytes.NewReader(data))
	case ".yaml", ".yml":
		m, err = LoadYAML(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("manifest %s: unsupported extension %q", name, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", name, err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", name, err)
	}
	return m, nil
}

// Bundle returns the bundle called name.
func (m *Manifest) Bundle(name string) (Bundle, bool) {
	for _, b := range m.Bundles {
		if b.Name == name {
			return b, true
		}
	}
	return Bundle{}, false
}

// BundleNames returns every bundle name in manifest order.
func (m *Manifest) BundleNames() []string {
	names := make([]string, len(m.Bundles))
	for i, b := range m.Bundles {
		names[i] = b.Name
	}
	return names
}

func (m *Manifest) validate() error {
	seen := make(map[string]struct{}, len(m.Bundles))
	for _, b := range m.Bundles {
		if b.Name == "" {
			return fmt.Errorf("bundle without a name")
		}
		if _, dup := seen[b.Name]; dup {
			return fmt.Errorf("duplicate bundle %q", b.Name)
		}
		seen[b.Name] = struct{}{}
		for _, a := range b.Assets {
			if a.Alias == "" || a.Src == "" {
				return fmt.Errorf("bundle %q: asset needs alias and src", b.Name)
			}
		}
	}
	return nil
}
