package config

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/arthur-debert/modlog/pkg/errors"
	"github.com/beevik/etree"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Formats lists the encodings accepted by Encode
var Formats = []string{"yaml", "toml", "xml"}

// Encode renders cfg as yaml, toml or xml. YAML and TOML output can be loaded
// back with Load; XML is an export format only.
func Encode(cfg *Config, format string) ([]byte, error) {
	switch format {
	case "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode yaml")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode yaml")
		}
		return buf.Bytes(), nil
	case "toml":
		out, err := toml.Marshal(cfg)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode toml")
		}
		return out, nil
	case "xml":
		return encodeXML(cfg)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unsupported output format: %s", format)
	}
}

func encodeXML(cfg *Config) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("modlog")
	root.CreateElement("default_level").SetText(cfg.DefaultLevel)
	root.CreateElement("log_dest").SetText(cfg.LogDest)
	if cfg.LogStream != "" {
		root.CreateElement("log_stream").SetText(cfg.LogStream)
	}
	root.CreateElement("color").SetText(strconv.FormatBool(cfg.Color))
	root.CreateElement("timestamp").SetText(strconv.FormatBool(cfg.Timestamp))
	root.CreateElement("millis").SetText(strconv.FormatBool(cfg.Millis))
	root.CreateElement("brief_info").SetText(strconv.FormatBool(cfg.BriefInfo))
	root.CreateElement("separator").SetText(cfg.Separator)
	if cfg.Root != "" {
		root.CreateElement("root").SetText(cfg.Root)
	}

	if len(cfg.ModLevel) > 0 {
		mods := root.CreateElement("mod_level")
		names := make([]string, 0, len(cfg.ModLevel))
		for name := range cfg.ModLevel {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			m := mods.CreateElement("module")
			m.CreateAttr("name", name)
			m.CreateAttr("level", cfg.ModLevel[name])
		}
	}

	if len(cfg.Rules) > 0 {
		list := root.CreateElement("rules")
		for _, rc := range cfg.Rules {
			r := list.CreateElement("rule")
			r.CreateAttr("kind", rc.Kind)
			r.CreateAttr("level", rc.Level)
			if rc.Timestamp != nil {
				r.CreateAttr("timestamp", strconv.FormatBool(*rc.Timestamp))
			}
			if rc.Color != nil {
				r.CreateAttr("color", strconv.FormatBool(*rc.Color))
			}
			r.SetText(rc.Match)
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode xml")
	}
	return out, nil
}
