package config

import (
	"sort"

	"github.com/arthur-debert/modlog/pkg/errors"
	"github.com/arthur-debert/modlog/pkg/level"
	"github.com/arthur-debert/modlog/pkg/rules"
	"github.com/arthur-debert/modlog/pkg/sink"
)

// Config is the decoded logging configuration
type Config struct {
	DefaultLevel string            `koanf:"default_level" yaml:"default_level" toml:"default_level"`
	ModLevel     map[string]string `koanf:"mod_level" yaml:"mod_level,omitempty" toml:"mod_level,omitempty"`
	Rules        []RuleConfig      `koanf:"rules" yaml:"rules,omitempty" toml:"rules,omitempty"`
	LogDest      string            `koanf:"log_dest" yaml:"log_dest" toml:"log_dest"`
	LogStream    string            `koanf:"log_stream" yaml:"log_stream,omitempty" toml:"log_stream,omitempty"`
	Color        bool              `koanf:"color" yaml:"color" toml:"color"`
	Timestamp    bool              `koanf:"timestamp" yaml:"timestamp" toml:"timestamp"`
	Millis       bool              `koanf:"millis" yaml:"millis" toml:"millis"`
	BriefInfo    bool              `koanf:"brief_info" yaml:"brief_info" toml:"brief_info"`
	Separator    string            `koanf:"separator" yaml:"separator" toml:"separator"`
	// Root is stripped from module paths before resolution, see logger.WithRoot
	Root string `koanf:"root" yaml:"root,omitempty" toml:"root,omitempty"`

	// Source is the file the config was loaded from, empty for defaults only
	Source string `koanf:"-" yaml:"-" toml:"-"`
}

// RuleConfig is one entry of the rules list. Nil formatting fields take the
// top level color and timestamp values.
type RuleConfig struct {
	Kind      string `koanf:"kind" yaml:"kind" toml:"kind"`
	Match     string `koanf:"match" yaml:"match" toml:"match"`
	Level     string `koanf:"level" yaml:"level" toml:"level"`
	Timestamp *bool  `koanf:"timestamp" yaml:"timestamp,omitempty" toml:"timestamp,omitempty"`
	Color     *bool  `koanf:"color" yaml:"color,omitempty" toml:"color,omitempty"`
}

// Validate checks levels, selectors and the destination without building
// anything.
func (c *Config) Validate() error {
	_, err := c.BuildTable()
	if err != nil {
		return err
	}
	_, err = c.Destination()
	return err
}

// Destination parses log_dest and checks that stream destinations name a
// log_stream.
func (c *Config) Destination() (sink.Destination, error) {
	dest, err := sink.ParseDestination(c.LogDest)
	if err != nil {
		return dest, err
	}
	if dest.IsStream() && c.LogStream == "" {
		return dest, errors.Newf(errors.ErrMissingStream,
			"missing log_stream parameter for log destination %s", dest)
	}
	return dest, nil
}

// Format returns the formatting options of the top level config
func (c *Config) Format() rules.Format {
	return rules.Format{ShowTimestamp: c.Timestamp, Color: c.Color}
}

// BuildTable turns the config into a rules table. mod_level entries are
// registered in sorted order before the rules list.
func (c *Config) BuildTable() (*rules.Table, error) {
	b := rules.NewBuilder(rules.WithSeparator(c.Separator))

	def, err := parseLevel(c.DefaultLevel, "default_level")
	if err != nil {
		return nil, err
	}
	if err := b.Register(rules.Default(), def, c.Format()); err != nil {
		return nil, err
	}

	modules := make([]string, 0, len(c.ModLevel))
	for m := range c.ModLevel {
		modules = append(modules, m)
	}
	sort.Strings(modules)
	for _, m := range modules {
		lvl, err := parseLevel(c.ModLevel[m], "mod_level."+m)
		if err != nil {
			return nil, err
		}
		if err := b.Register(rules.Prefix(m), lvl, c.Format()); err != nil {
			return nil, err
		}
	}

	for i, rc := range c.Rules {
		if err := c.registerRule(b, rc); err != nil {
			return nil, errors.Wrapf(err, errors.GetErrorCode(err), "rule %d", i).
				WithDetail("index", i)
		}
	}

	return b.Build(), nil
}

func (c *Config) registerRule(b *rules.Builder, rc RuleConfig) error {
	kind, err := rules.ParseKind(rc.Kind)
	if err != nil {
		return err
	}
	lvl, err := parseLevel(rc.Level, "level")
	if err != nil {
		return err
	}
	sel, err := rules.NewSelector(kind, rc.Match)
	if err != nil {
		return err
	}

	f := c.Format()
	if rc.Timestamp != nil {
		f.ShowTimestamp = *rc.Timestamp
	}
	if rc.Color != nil {
		f.Color = *rc.Color
	}
	return b.Register(sel, lvl, f)
}

func parseLevel(s, field string) (level.Level, error) {
	lvl, err := level.Parse(s)
	if err != nil {
		return lvl, errors.Wrapf(err, errors.ErrInvalidLevel, "invalid log level for %s: '%s'", field, s).
			WithDetail("field", field)
	}
	return lvl, nil
}
