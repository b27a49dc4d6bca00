package main

import (
	"os"
	"path/filepath"

	"go.coder.com/sltools/internal/toolconf"
)

// config reads the configuration at r.configPath. A relative path is
// resolved against dir. A missing file means the defaults.
func (r *rootCmd) config() (toolconf.Config, error) {
	path := toolconf.ExpandHome(r.configPath)
	if !filepath.IsAbs(path) && r.dir != "" {
		path = filepath.Join(r.dir, path)
	}

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		r.debug("no configuration exists at %v, using defaults", path)
		return toolconf.Default(), nil
	}

	c, err := toolconf.Read(path)
	if err != nil {
		return toolconf.Config{}, err
	}
	r.debug("loaded configuration from %v", path)
	return c, nil
}
