// Package format renders log records into single output lines.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/modlog/pkg/level"
	"github.com/arthur-debert/modlog/pkg/rules"
	"github.com/muesli/termenv"
)

const (
	// TimestampLayout is used for timestamps without milliseconds
	TimestampLayout = "2006-01-02 15:04:05"
	// TimestampMillisLayout is used when millisecond precision is enabled
	TimestampMillisLayout = "2006-01-02 15:04:05.000"
)

// Formatter holds the options that apply to every line regardless of rule
type Formatter struct {
	// Millis adds milliseconds to timestamps
	Millis bool
	// BriefInfo drops the module tag from Info lines
	BriefInfo bool
}

// Line renders one record. The returned line ends with a newline.
//
//	2024-05-01 10:00:00 WARN  [net::tls] handshake slow
func (f Formatter) Line(ts time.Time, lvl level.Level, module, msg string, opts rules.Format) string {
	var sb strings.Builder

	if opts.ShowTimestamp {
		layout := TimestampLayout
		if f.Millis {
			layout = TimestampMillisLayout
		}
		sb.WriteString(ts.Format(layout))
		sb.WriteByte(' ')
	}

	fmt.Fprintf(&sb, "%-5s ", lvl)
	if !(f.BriefInfo && lvl == level.Info) {
		fmt.Fprintf(&sb, "[%s] ", module)
	}
	sb.WriteString(msg)

	line := sb.String()
	if opts.Color {
		line = Colorize(lvl, line)
	}
	return line + "\n"
}

// Colorize wraps s in the ANSI color for lvl
func Colorize(lvl level.Level, s string) string {
	return termenv.ANSI.String(s).Foreground(Color(lvl)).String()
}

// Color returns the ANSI color used for lvl
func Color(lvl level.Level) termenv.Color {
	switch lvl {
	case level.Error:
		return termenv.ANSIRed
	case level.Warn:
		return termenv.ANSIYellow
	case level.Info:
		return termenv.ANSIGreen
	case level.Debug:
		return termenv.ANSICyan
	default:
		return termenv.ANSIBlue
	}
}
