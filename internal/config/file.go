package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dmitrijs2005/gophnotes/internal/flagx"
)

// FileConfig is a DTO used exclusively for decoding the config file.
type FileConfig struct {
	StorePath    string `json:"store_path" toml:"store_path"`
	StoreSecret  string `json:"store_secret" toml:"store_secret"`
	DocumentsDir string `json:"documents_dir" toml:"documents_dir"`
	LogLevel     string `json:"log_level" toml:"log_level"`
}

// parseFile overlays cfg with the config file named by -c or -config in
// args. A ".toml" file is decoded as TOML, anything else as JSON. Without
// either flag nothing happens. Read and decode errors panic.
func parseFile(cfg *Config, args []string) {
	path := flagx.JsonConfigFlags(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &fc)
	} else {
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	overlay(&cfg.StorePath, fc.StorePath)
	overlay(&cfg.StoreSecret, fc.StoreSecret)
	overlay(&cfg.DocumentsDir, fc.DocumentsDir)
	overlay(&cfg.LogLevel, fc.LogLevel)
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
