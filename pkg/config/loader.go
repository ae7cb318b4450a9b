package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/modlog/pkg/errors"
	"github.com/arthur-debert/modlog/pkg/logging"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvConfigPath names the config file to load when no path is given
	EnvConfigPath = "LOG_CONFIG"
	// EnvPrefix prefixes variables overriding single config keys
	EnvPrefix = "MODLOG_"

	// Module names contain dots, so config keys are split on a character
	// module paths never use.
	keyDelim = "|"
)

//go:embed embedded/defaults.yaml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Load builds a Config from the defaults, a config file and the environment.
// The file is path if given, else $LOG_CONFIG, else the first of
// config.yaml, config.yml, config.toml in the modlog XDG config directory.
// Without any file only defaults and environment apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = DefaultPath()
	}

	logger := logging.GetLogger("config.loader")

	k, err := newKoanf()
	if err != nil {
		return nil, err
	}

	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", path).
				WithDetail("path", path)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	if err := loadEnv(k); err != nil {
		return nil, err
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.Source = path
	return cfg, nil
}

// LoadFromBytes decodes data in the given format ("yaml" or "toml") on top of
// the defaults. The environment is not consulted.
func LoadFromBytes(data []byte, format string) (*Config, error) {
	parser, err := parserFor("config." + format)
	if err != nil {
		return nil, err
	}

	k, err := newKoanf()
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if err := k.Load(&rawBytesProvider{bytes: data}, parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s config", format)
		}
	}
	return unmarshal(k)
}

// newKoanf returns a koanf instance holding the embedded defaults
func newKoanf() (*koanf.Koanf, error) {
	k := koanf.New(keyDelim)
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, yaml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load defaults")
	}
	return k, nil
}

// Defaults returns the built-in configuration
func Defaults() *Config {
	cfg, err := LoadFromBytes(nil, "yaml")
	if err != nil {
		// The embedded defaults are part of the binary
		panic(err)
	}
	return cfg
}

// DefaultPath returns the first existing config file in the modlog XDG config
// directory, or "" when there is none.
func DefaultPath() string {
	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		if p, err := xdg.SearchConfigFile(filepath.Join("modlog", name)); err == nil {
			return p
		}
	}
	return ""
}

func loadEnv(k *koanf.Koanf) error {
	err := k.Load(env.Provider(EnvPrefix, keyDelim, func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}
	return nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode config")
	}
	return &cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigParse, "unsupported config format: %s", path).
			WithDetail("path", path)
	}
}
