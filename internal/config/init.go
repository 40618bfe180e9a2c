package config

import (
	_ "embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

//go:embed example.yaml
var exampleConfig []byte

// Example returns the annotated example configuration written by Init.
func Example() []byte {
	out := make([]byte, len(exampleConfig))
	copy(out, exampleConfig)
	return out
}

// Init writes the example configuration to path. An existing file is only
// replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ValidationError("configuration file already exists").
			WithContext("path", path).
			WithContext("hint", "use --force to overwrite").
			Build()
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to stat config file").Build()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create config directory").Build()
		}
	}
	if err := os.WriteFile(path, exampleConfig, 0o600); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).Build()
	}
	return nil
}
