package loopkit

import (
	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/frameless/port/option"
)

// Config holds the construction settings of a loop.
type Config struct {
	// Logger receives debug entries about materialisation and observer changes.
	// When nil, the loop doesn't log.
	Logger *logging.Logger
	// RunOnConstruct replays the body for every element except the last one
	// while the loop is being constructed, notifying observers after each call.
	RunOnConstruct bool
}

// Option configures a loop at construction.
type Option option.Option[Config]

func (c Config) Configure(t *Config) {
	if c.Logger != nil {
		t.Logger = c.Logger
	}
	if c.RunOnConstruct {
		t.RunOnConstruct = true
	}
}

// WithLogger sets the logger of the loop.
func WithLogger(l *logging.Logger) Option {
	return option.Func[Config](func(c *Config) { c.Logger = l })
}

// RunOnConstruct makes the constructor replay the body for all elements but the last,
// leaving the last element as the current value.
func RunOnConstruct() Option {
	return option.Func[Config](func(c *Config) { c.RunOnConstruct = true })
}
