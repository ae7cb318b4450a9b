package logger

import (
	"github.com/arthur-debert/modlog/pkg/config"
	"github.com/arthur-debert/modlog/pkg/format"
	"github.com/arthur-debert/modlog/pkg/sink"
)

// FromConfig builds a logger from cfg: its rule table, its destination and
// its line options. The root module is cfg.Root. Options given here apply
// after the config; a sink passed with WithSink gets cfg's destination.
func FromConfig(cfg *config.Config, opts ...Option) (*Logger, error) {
	table, err := cfg.BuildTable()
	if err != nil {
		return nil, err
	}
	dest, err := cfg.Destination()
	if err != nil {
		return nil, err
	}

	base := []Option{WithRoot(cfg.Root), WithFormatter(formatterFor(cfg))}
	l := New(table, append(base, opts...)...)
	if err := l.setDestination(dest, cfg.LogStream); err != nil {
		return nil, err
	}
	return l, nil
}

// ApplyConfig replaces the table, destination and line options with those
// of cfg. Nothing changes if cfg does not validate. The root module is fixed
// at construction and is not taken from cfg.
func (l *Logger) ApplyConfig(cfg *config.Config) error {
	table, err := cfg.BuildTable()
	if err != nil {
		return err
	}
	dest, err := cfg.Destination()
	if err != nil {
		return err
	}
	if err := l.setDestination(dest, cfg.LogStream); err != nil {
		return err
	}

	if cfg.Root != l.root {
		l.logger.Warn().Str("root", cfg.Root).Msg("Ignoring root change on reload")
	}
	l.SetFormatter(formatterFor(cfg))
	l.Reconfigure(table)
	return nil
}

func (l *Logger) setDestination(dest sink.Destination, path string) error {
	if !dest.IsStream() {
		return l.sink.SetDestination(dest, nil)
	}
	stream, err := sink.OpenStream(path)
	if err != nil {
		return err
	}
	if err := l.sink.SetDestination(dest, stream); err != nil {
		_ = stream.Close()
		return err
	}
	l.logger.Debug().Str("dest", dest.String()).Str("path", path).Msg("Log stream opened")
	return nil
}

func formatterFor(cfg *config.Config) format.Formatter {
	return format.Formatter{Millis: cfg.Millis, BriefInfo: cfg.BriefInfo}
}
