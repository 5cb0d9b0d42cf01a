package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// config holds the CLI's optional defaults, loaded from a TOML file (see
// spatialmodel/inmap's cmd/inmapweb/main.go, which decodes its server
// config the same way with toml.DecodeReader).
type config struct {
	DataFile string `toml:"data_file"`
	K        int    `toml:"k"`
	Backend  string `toml:"backend"`
}

func defaultConfig() config {
	return config{K: 1, Backend: "kd"}
}

// loadConfig reads a TOML config file if path is non-empty and exists. A
// missing path is not an error: the CLI falls back to defaults and flags.
func loadConfig(path string) (config, error) {
	c := defaultConfig()
	if path == "" {
		return c, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, err
	}
	defer f.Close()
	if _, err := toml.DecodeReader(f, &c); err != nil {
		return c, err
	}
	return c, nil
}
