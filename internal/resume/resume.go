// Package resume loads the site owner's profile and derives the texts the
// chat assistant is built from.
package resume

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"portfolio-backend/internal/models"
)

// Load reads the profile file. The format follows the extension (json, yaml,
// toml).
func Load(path string) (*models.Resume, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read resume %s: %w", path, err)
	}

	var r models.Resume
	if err := v.Unmarshal(&r); err != nil {
		return nil, fmt.Errorf("failed to decode resume: %w", err)
	}
	if r.Name == "" {
		return nil, errors.New("resume has no name")
	}
	if r.Contact.Email == "" {
		return nil, errors.New("resume has no contact email")
	}
	return &r, nil
}
