// Package config reads flag defaults from a TOML or HCL file.
package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"erlang-solutions.com/argstore/internal/args"
	"erlang-solutions.com/argstore/internal/i18n"
	"erlang-solutions.com/argstore/pkg/errors"
)

const DefaultFile = "argstore.toml"

type Logging struct {
	Level   string `toml:"level"`
	LogFile string `toml:"logfile,omitempty"`
}

type Config struct {
	Path    string `toml:"-"`
	Logging Logging
	// Args holds flag defaults keyed by flag name with or without the
	// leading dash.
	Args map[string][]string `toml:"-"`
}

var _ args.Source = Config{}

type tomlFile struct {
	Logging Logging        `toml:"logging"`
	Args    map[string]any `toml:"args"`
}

func Load(path string) (Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return loadHCL(path)
	default:
		return loadTOML(path)
	}
}

func loadTOML(path string) (Config, error) {
	var file tomlFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return Config{Path: path}, errors.WrapWithBase(errors.ErrConfigLoad, path, err)
	}

	cfg := Config{Path: path, Logging: file.Logging, Args: make(map[string][]string, len(file.Args))}
	for name, raw := range file.Args {
		values, err := flagValues(raw)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s", errors.ErrConfigLoad,
				i18n.T("config_value_invalid", map[string]any{"Key": name, "Error": err}))
		}
		cfg.Args[name] = values
	}
	return cfg, nil
}

// flagValues renders a decoded TOML value the way it would be typed on the
// command line. Arrays become one value per element.
func flagValues(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, err := scalar(item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	default:
		s, err := scalar(v)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
}

func scalar(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case bool:
		return boolText(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", raw)
	}
}

func boolText(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// Values implements args.Source. The logging section supplies -loglevel and
// -logfile only when the args section does not set them itself.
func (c Config) Values() (map[string][]string, error) {
	out := make(map[string][]string, len(c.Args)+2)
	for name, vals := range c.Args {
		out[name] = append([]string(nil), vals...)
	}

	keys := c.Keys()
	if c.Logging.Level != "" && !slices.Contains(keys, "-loglevel") {
		out["-loglevel"] = []string{c.Logging.Level}
	}
	if c.Logging.LogFile != "" && !slices.Contains(keys, "-logfile") {
		out["-logfile"] = []string{c.Logging.LogFile}
	}
	return out, nil
}

func (c Config) Keys() []string {
	keys := make([]string, 0, len(c.Args))
	for k := range c.Args {
		keys = append(keys, args.Canonical(k))
	}
	sort.Strings(keys)
	return keys
}
