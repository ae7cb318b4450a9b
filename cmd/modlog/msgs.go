package modlog

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Inspect and exercise per-module log filtering"
	MsgResolveShort    = "Show which rule a module resolves to at a level"
	MsgResolveLong     = "Resolve prints the rule selected for the module path and whether a record at the given level would be written."
	MsgRulesShort      = "List the rules of the configuration"
	MsgRulesLong       = "Rules prints the rule table in registration order, with the default rule last."
	MsgCheckShort      = "Validate a configuration file"
	MsgCheckLong       = "Check loads the configuration file, builds its rule table and checks its destination. It exits non-zero when anything is invalid."
	MsgGenConfigShort  = "Print the configuration as YAML, TOML or XML"
	MsgGenConfigLong   = "Genconfig prints the configuration currently in effect, or the built-in defaults, in the chosen format."
	MsgEmitShort       = "Write a record through the configuration"
	MsgEmitLong        = "Emit writes one record for the module at the level to the configured destination, if the configuration allows it."
	MsgWatchShort      = "Resolve modules again whenever the configuration changes"
	MsgVersionShort    = "Print version information"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"

	// Output
	MsgAllowed       = "allowed"
	MsgSuppressed    = "suppressed"
	MsgCheckOK       = "Configuration OK: %s (%d rules, default %s)"
	MsgBuiltin       = "built-in defaults"
	MsgSuppressedRec = "Record suppressed: %s at %s resolves to %s (min %s)\n"
	MsgWatching      = "Watching %s, press Ctrl-C to stop\n"
	MsgReloaded      = "\nReloaded %s\n"
	MsgReloadFailed  = "\nReload failed, keeping previous configuration: %v\n"
	MsgMetricsAddr   = "Serving metrics on http://%s/metrics\n"
	MsgWroteFile     = "Wrote %s\n"
	MsgVersionFormat = "modlog version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrNoCommand   = "no command specified"
	MsgErrNoWatchFile = "no configuration file to watch, use --config or $LOG_CONFIG"
	MsgErrHelpMissing = "help command not found"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Configuration file (default $LOG_CONFIG or $XDG_CONFIG_HOME/modlog/config.yaml)"
	MsgFlagColor    = "Color output: auto, always or never"
	MsgFlagFormat   = "Output format: yaml, toml or xml"
	MsgFlagOutput   = "Write to a file instead of stdout"
	MsgFlagDefaults = "Use the built-in defaults instead of the configuration file"
	MsgFlagZerolog  = "Write the record through the zerolog bridge"
	MsgFlagField    = "Add a key=value field (with --zerolog)"
	MsgFlagMetrics  = "Serve Prometheus metrics on this address"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/resolve-example.txt
	msgResolveExampleRaw string
	MsgResolveExample    = strings.TrimRight(msgResolveExampleRaw, "\n")

	//go:embed msgs/genconfig-example.txt
	msgGenConfigExampleRaw string
	MsgGenConfigExample    = strings.TrimRight(msgGenConfigExampleRaw, "\n")

	//go:embed msgs/emit-example.txt
	msgEmitExampleRaw string
	MsgEmitExample    = strings.TrimRight(msgEmitExampleRaw, "\n")

	//go:embed msgs/watch-long.txt
	msgWatchLongRaw string
	MsgWatchLong    = strings.TrimSpace(msgWatchLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
