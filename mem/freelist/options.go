package freelist

import "log/slog"

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used for allocation and free failures.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}
