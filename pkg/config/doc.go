// Package config loads modlog configuration from embedded defaults, a YAML or
// TOML file, and MODLOG_* environment variables, in that order.
//
// A configuration file looks like:
//
//	default_level: warn
//	log_dest: streamstderr
//	log_stream: debug.log
//	color: true
//	brief_info: true
//	mod_level:
//	  'test_mod': debug
//	  'test_mod::test_test': trace
//	rules:
//	  - kind: pattern
//	    match: '.*::db'
//	    level: trace
//	    timestamp: false
//
// mod_level entries become prefix rules. Entries under rules pick their
// selector kind explicitly and may override color and timestamp per rule.
package config
