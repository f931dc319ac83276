package ir

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ReadModule decodes a module from YAML.
func ReadModule(r io.Reader) (*Module, error) {
	var m Module
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode module: %w", err)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("decode module: missing module name")
	}
	return &m, nil
}

// LoadModule reads a module from a YAML file.
func LoadModule(path string) (*Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load module: %w", err)
	}
	defer f.Close()

	m, err := ReadModule(f)
	if err != nil {
		return nil, fmt.Errorf("load module %s: %w", path, err)
	}
	return m, nil
}

// WriteModule encodes a module as YAML.
func WriteModule(w io.Writer, m *Module) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode module: %w", err)
	}
	return enc.Close()
}

// SaveModule writes a module to a YAML file, replacing any existing file.
func SaveModule(m *Module, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save module: %w", err)
	}
	if err := WriteModule(f, m); err != nil {
		f.Close()
		return fmt.Errorf("save module %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save module %s: %w", path, err)
	}
	return nil
}
