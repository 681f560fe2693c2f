package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnsureUserConfig makes sure a config file exists in the data dir and
// returns its path. A shipped default file is copied in if present;
// otherwise the built-in defaults are written out so the user has
// something to edit.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	if src, err := os.Open(defaultPath); err == nil {
		defer src.Close()
		dst, err := os.Create(userPath)
		if err != nil {
			return "", err
		}
		defer dst.Close()
		if _, err := io.Copy(dst, src); err != nil {
			return "", err
		}
		return userPath, nil
	}

	b, err := yaml.Marshal(Default())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(userPath, b, 0o644); err != nil {
		return "", err
	}
	return userPath, nil
}
