// Package logger routes log records to a sink through a rule table.
//
// A Logger is an explicit value; there is no process-wide instance. Code that
// logs holds a *Logger or a *Module bound to one module path:
//
//	table, _ := cfg.BuildTable()
//	log := logger.New(table)
//	db := log.Module("app::db")
//	db.Debugf("opened %d connections", n)
//
// Each call loads the current table, resolves the rule for the module path
// and either drops the record or formats it and writes it to the sink.
// Reconfigure replaces the table atomically, so a record is always judged by
// one complete table.
package logger
