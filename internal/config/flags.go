package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gophnotes/internal/flagx"
)

// parseFlags populates cfg from the -s, -d and -l flags in args. Other
// arguments, including -c/-config, are left to their own loaders.
func parseFlags(cfg *Config, args []string) {
	fs := flag.NewFlagSet("gophnotes", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "credential store file")
	fs.StringVar(&cfg.DocumentsDir, "d", cfg.DocumentsDir, "documents directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := flagx.ParseOwn(fs, args); err != nil {
		panic(err)
	}
}
