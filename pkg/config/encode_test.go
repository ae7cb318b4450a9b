package config_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/modlog/pkg/config"
	"github.com/arthur-debert/modlog/pkg/errors"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_RoundTrip(t *testing.T) {
	orig, err := config.LoadFromBytes([]byte(sampleYAML), "yaml")
	require.NoError(t, err)

	for _, format := range []string{"yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			out, err := config.Encode(orig, format)
			require.NoError(t, err)

			back, err := config.LoadFromBytes(out, format)
			require.NoError(t, err)
			assert.Equal(t, orig, back)
		})
	}
}

func TestEncode_YAMLOmitsSource(t *testing.T) {
	cfg := config.Defaults()
	cfg.Source = "/etc/modlog.yaml"

	out, err := config.Encode(cfg, "yaml")
	require.NoError(t, err)
	assert.NotContains(t, string(out), "/etc/modlog.yaml")
	assert.Contains(t, string(out), "default_level: info")
	assert.NotContains(t, string(out), "mod_level")
}

func TestEncode_XML(t *testing.T) {
	cfg, err := config.LoadFromBytes([]byte(sampleYAML), "yaml")
	require.NoError(t, err)

	out, err := config.Encode(cfg, "xml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "<?xml"))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	root := doc.SelectElement("modlog")
	require.NotNil(t, root)
	assert.Equal(t, "warn", root.SelectElement("default_level").Text())
	assert.Equal(t, "debug.log", root.SelectElement("log_stream").Text())

	mods := root.FindElements("mod_level/module")
	require.Len(t, mods, 2)
	assert.Equal(t, "test_mod", mods[0].SelectAttrValue("name", ""))
	assert.Equal(t, "trace", mods[1].SelectAttrValue("level", ""))

	rs := root.FindElements("rules/rule")
	require.Len(t, rs, 2)
	assert.Equal(t, "exact", rs[0].SelectAttrValue("kind", ""))
	assert.Equal(t, "false", rs[0].SelectAttrValue("color", ""))
	assert.Nil(t, rs[0].SelectAttr("timestamp"))
	assert.Equal(t, "net::tls::handshake", rs[0].Text())
	assert.Equal(t, ".*::db", rs[1].Text())
}

func TestEncode_UnknownFormat(t *testing.T) {
	_, err := config.Encode(config.Defaults(), "ini")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
