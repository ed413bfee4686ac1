// Package config loads the json configuration files of the commands.
package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Path is the default config directory, relative to the repository root.
const Path = "infra/config"

// Load decodes the config file of the given key from dir into v.
// A missing file can be detected with errors.Is(err, os.ErrNotExist).
func Load(dir, key string, v interface{}) error {
	b, err := ioutil.ReadFile(filepath.Join(dir, fmt.Sprintf("%s.json", key)))
	if err != nil {
		return fmt.Errorf("could not load config for %s: %w", key, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("could not unmarshal the config for %s: %w", key, err)
	}
	log.Info().Str("config", key).Str("dir", dir).Msg("loaded config")
	return nil
}

// MustLoad loads the config for the given key from the default directory.
func MustLoad(key string, v interface{}) {
	if err := Load(Path, key, v); err != nil {
		panic(err.Error())
	}
}
