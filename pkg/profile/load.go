package profile

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkuehn/vitae/pkg/errors"
)

// Load reads, validates, and decodes a profile YAML file.
func Load(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeDataNotFound, err, "profile %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read profile %s", path)
	}
	return Parse(raw)
}

// Parse validates and decodes profile YAML bytes.
func Parse(raw []byte) (*Profile, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}

	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "decode profile")
	}
	return &p, nil
}
