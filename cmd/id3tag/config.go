package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	id3 "github.com/Jeansidharta/id3v2-tagging-tool"
)

// config is the optional TOML configuration file, by default
// ~/.id3tag.toml. Command line flags override it.
type config struct {
	// LogLevel is one of trace, debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// Color forces colored output on or off. Unset means "only when
	// stderr is a terminal".
	Color *bool `toml:"color"`

	// SizeConvention is the frame size field convention: "auto"
	// (default, syncsafe for v4 tags), "syncsafe" or "be32".
	SizeConvention string `toml:"size_convention"`

	// WriteEncoding is the text serialization policy: "preserve"
	// (default) or "utf16".
	WriteEncoding string `toml:"write_encoding"`
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".id3tag.toml")
}

// loadConfig reads the config file at path. A missing file at the
// default location is not an error; an explicitly given path must
// exist.
func loadConfig(path string, explicit bool) (config, error) {
	var cfg config
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return config{}, nil
		}
		return config{}, errors.Wrapf(err, "reading config %s", path)
	}
	return cfg, nil
}

func (c config) sizeField() (id3.SizeField, error) {
	switch c.SizeConvention {
	case "", "auto":
		return id3.SizeFieldAuto, nil
	case "syncsafe":
		return id3.SizeFieldSyncsafe, nil
	case "be32":
		return id3.SizeFieldBE32, nil
	default:
		return id3.SizeFieldAuto, errors.Errorf("unknown size_convention %q", c.SizeConvention)
	}
}

func (c config) writeText() (id3.WriteText, error) {
	switch c.WriteEncoding {
	case "", "preserve":
		return id3.WriteTextPreserve, nil
	case "utf16":
		return id3.WriteTextUTF16, nil
	default:
		return id3.WriteTextPreserve, errors.Errorf("unknown write_encoding %q", c.WriteEncoding)
	}
}
