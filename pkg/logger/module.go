package logger

import "github.com/arthur-debert/modlog/pkg/level"

// Module is a logger bound to one module path
type Module struct {
	l    *Logger
	path string
}

// Module returns a logger for path
func (l *Logger) Module(path string) *Module {
	return &Module{l: l, path: path}
}

// Path returns the module path
func (m *Module) Path() string {
	return m.path
}

// Child returns a logger for the sub module name, joined with the current
// table's separator.
func (m *Module) Child(name string) *Module {
	if m.path == "" {
		return m.l.Module(name)
	}
	return m.l.Module(m.path + m.l.Table().Separator() + name)
}

// Enabled reports whether a record at lvl would be written
func (m *Module) Enabled(lvl level.Level) bool {
	return m.l.Enabled(m.path, lvl)
}

func (m *Module) Trace(msg string) { m.l.Log(m.path, level.Trace, msg) }
func (m *Module) Debug(msg string) { m.l.Log(m.path, level.Debug, msg) }
func (m *Module) Info(msg string)  { m.l.Log(m.path, level.Info, msg) }
func (m *Module) Warn(msg string)  { m.l.Log(m.path, level.Warn, msg) }
func (m *Module) Error(msg string) { m.l.Log(m.path, level.Error, msg) }

func (m *Module) Tracef(template string, args ...interface{}) {
	m.l.Logf(m.path, level.Trace, template, args...)
}

func (m *Module) Debugf(template string, args ...interface{}) {
	m.l.Logf(m.path, level.Debug, template, args...)
}

func (m *Module) Infof(template string, args ...interface{}) {
	m.l.Logf(m.path, level.Info, template, args...)
}

func (m *Module) Warnf(template string, args ...interface{}) {
	m.l.Logf(m.path, level.Warn, template, args...)
}

func (m *Module) Errorf(template string, args ...interface{}) {
	m.l.Logf(m.path, level.Error, template, args...)
}

// Errorw logs err with a message prefix
func (m *Module) Errorw(err error, msg string) {
	m.l.Logf(m.path, level.Error, "%s: %v", msg, err)
}
