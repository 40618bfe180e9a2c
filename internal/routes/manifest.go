package routes

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// Manifest is the on-disk form of a route table.
type Manifest struct {
	Routes []Route `yaml:"routes"`
}

// Load reads a YAML route manifest.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read route manifest").
			WithContext("path", path).Build()
	}
	t, err := Parse(data)
	if err != nil {
		if ce, ok := ferrors.AsClassified(err); ok {
			return nil, ce.WithContext("file", path)
		}
		return nil, err
	}
	return t, nil
}

// Parse decodes a manifest document into a table.
func Parse(data []byte) (*Table, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse route manifest").Build()
	}
	t := NewTable()
	for _, r := range m.Routes {
		if err := t.Add(r); err != nil {
			return nil, err
		}
	}
	if _, ok := t.Home(); !ok {
		return nil, ferrors.ValidationError("route manifest must define the home route \"/\"").Build()
	}
	return t, nil
}

// Encode writes the table as a YAML manifest.
func Encode(w io.Writer, t *Table) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Manifest{Routes: t.Routes()}); err != nil {
		return err
	}
	return enc.Close()
}
