package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/modlog/pkg/level"
	"github.com/rs/zerolog"
)

// Zerolog returns a zerolog logger for module path. Events are judged by the
// logger's current table and written through its sink in the same line format
// as Log. Event fields follow the message as sorted key=value pairs.
//
// Events below zerolog's global level never reach the table.
func (l *Logger) Zerolog(path string) zerolog.Logger {
	return zerolog.New(&eventWriter{l: l, path: path}).
		Level(zerolog.TraceLevel).
		Hook(filterHook{l: l, path: path})
}

// filterHook discards events the table rejects before they are encoded
type filterHook struct {
	l    *Logger
	path string
}

func (h filterHook) Run(e *zerolog.Event, zl zerolog.Level, _ string) {
	if _, ok := h.l.resolve(h.path, level.FromZerolog(zl)); !ok {
		e.Discard()
	}
}

// eventWriter turns encoded zerolog events back into lines
type eventWriter struct {
	l    *Logger
	path string
}

func (w *eventWriter) Write(p []byte) (int, error) {
	return w.WriteLevel(zerolog.NoLevel, p)
}

func (w *eventWriter) WriteLevel(zl zerolog.Level, p []byte) (int, error) {
	lvl := level.FromZerolog(zl)

	fields := map[string]interface{}{}
	d := json.NewDecoder(bytes.NewReader(p))
	d.UseNumber()
	if err := d.Decode(&fields); err != nil {
		return 0, fmt.Errorf("cannot decode event: %w", err)
	}

	res := w.l.Resolve(w.path, lvl)
	w.l.write(w.path, lvl, eventMessage(fields), res.Format)
	return len(p), nil
}

func eventMessage(fields map[string]interface{}) string {
	var sb strings.Builder
	if msg, ok := fields[zerolog.MessageFieldName].(string); ok {
		sb.WriteString(msg)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		switch k {
		case zerolog.MessageFieldName, zerolog.LevelFieldName, zerolog.TimestampFieldName:
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(fieldValue(fields[k]))
	}
	return sb.String()
}

func fieldValue(v interface{}) string {
	switch v := v.(type) {
	case string:
		if v == "" || strings.ContainsAny(v, " \t\n\"=") {
			return strconv.Quote(v)
		}
		return v
	case nil:
		return "null"
	case json.Number, bool:
		return fmt.Sprint(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}
