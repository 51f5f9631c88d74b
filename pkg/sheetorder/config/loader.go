package config

import (
	"errors"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// Load reads, decodes and validates the configuration document at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewConfigErrorWithCause(NotFound, path, "configuration file not found", err)
		}
		return nil, NewConfigErrorWithCause(Invalid, path, "failed to open configuration file", err)
	}
	defer func() {
		_ = f.Close()
	}()

	return LoadFromReader(path, f)
}

// LoadFromReader decodes and validates a configuration document.
// name identifies the document in errors.
func LoadFromReader(name string, r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, NewConfigErrorWithCause(Invalid, name, "failed to read configuration file", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, NewConfigErrorWithCause(Invalid, name, "invalid YAML", err)
	}

	if violations := validate(&doc); len(violations) > 0 {
		return nil, NewValidationError(name, violations)
	}

	return doc.toConfig(), nil
}
