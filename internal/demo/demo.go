// Package demo drives a set of loopkit loops over the inputs of the loopy command.
package demo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"go.llib.dev/frameless/pkg/env"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/loopy/pkg/loopkit"
)

// Config is loaded from the environment with LoadConfig.
type Config struct {
	// Prefix labels the lines printed for the command line arguments.
	Prefix   string        `env:"LOOPY_PREFIX" default:"loopy"`
	LogLevel logging.Level `env:"LOOPY_LOG_LEVEL" default:"info"`
	// Stdin makes the demo loop over the lines of the standard input.
	Stdin bool `env:"LOOPY_STDIN" default:"false"`
	// EnvKeys makes the demo loop over the names of the environment variables.
	EnvKeys bool `env:"LOOPY_ENV_KEYS" default:"false"`
}

// LoadConfig reads the LOOPY_ environment variables.
func LoadConfig() (Config, error) {
	var c Config
	return c, env.Load(&c)
}

// Demo prints the loops built from its inputs to Stdout.
type Demo struct {
	Config  Config
	Args    []string
	Stdin   io.Reader
	Stdout  io.Writer
	Environ []string
	Logger  *logging.Logger
}

// Run is compatible with tasker.Task.
func (d Demo) Run(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{name: "args", fn: d.args},
		{name: "jenny", fn: d.jenny},
		{name: "nested", fn: d.nested},
		{name: "convoluted", fn: d.convoluted},
		{name: "stdin", fn: d.stdin},
		{name: "env", fn: d.envKeys},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}
	return nil
}

func printer[T any](w io.Writer, label string) loopkit.Body[T] {
	return func(x T) { fmt.Fprintf(w, "%s:%v\n", label, x) }
}

func (d Demo) opts() []loopkit.Option {
	if d.Logger == nil {
		return nil
	}
	return []loopkit.Option{loopkit.WithLogger(d.Logger)}
}

// skip logs why an optional input has nothing to loop over.
func (d Demo) skip(ctx context.Context, input string, err error) error {
	if !errors.Is(err, loopkit.ErrInvalidArgument) {
		return err
	}
	if d.Logger != nil {
		d.Logger.Warn(ctx, "nothing to loop over",
			logging.Field("input", input),
			logging.ErrField(err))
	}
	return nil
}

func (d Demo) args(ctx context.Context) error {
	loop, err := loopkit.FromSlice(printer[string](d.Stdout, d.Config.Prefix), d.Args, d.opts()...)
	if err != nil {
		return d.skip(ctx, "args", err)
	}
	return loop.Call(ctx)
}

func (d Demo) jenny(ctx context.Context) error {
	loop, err := loopkit.FromSlice(printer[int](d.Stdout, "Jenny"), []int{8, 6, 7, 5, 3, 0, 9}, d.opts()...)
	if err != nil {
		return err
	}
	return loop.Call(ctx)
}

// nested runs a loop whose elements are loops built from every source kind.
func (d Demo) nested(ctx context.Context) error {
	vs := []int{1, 2}
	iterable, err := loopkit.FromIterable(printer[int](d.Stdout, "iterable"), slices.Values(vs), d.opts()...)
	if err != nil {
		return err
	}
	enumeration, err := loopkit.FromEnumeration(printer[int](d.Stdout, "enumeration"), loopkit.Enumerate(vs), d.opts()...)
	if err != nil {
		return err
	}
	ch := make(chan int, len(vs))
	for _, v := range vs {
		ch <- v
	}
	close(ch)
	channel, err := loopkit.FromChan(printer[int](d.Stdout, "channel"), ch, d.opts()...)
	if err != nil {
		return err
	}
	outer, err := loopkit.Values(func(l *loopkit.To[int]) { l.Run() }, iterable, enumeration, channel)
	if err != nil {
		return err
	}
	return outer.Call(ctx)
}

// convoluted advances tock every time tick replays an element.
func (d Demo) convoluted(ctx context.Context) error {
	tick, err := loopkit.FromSlice(printer[int](d.Stdout, "tick"), []int{1, 2, 3}, d.opts()...)
	if err != nil {
		return err
	}
	tock, err := loopkit.FromSlice(printer[int](d.Stdout, "tock"), []int{4, 5, 6}, d.opts()...)
	if err != nil {
		return err
	}
	tick.AddObserver(tock)
	return tick.Call(ctx)
}

func (d Demo) stdin(ctx context.Context) error {
	if !d.Config.Stdin || d.Stdin == nil {
		return nil
	}
	loop, err := loopkit.FromIterator[string](printer[string](d.Stdout, "stdin"),
		scannerIterator{Scanner: bufio.NewScanner(d.Stdin)}, d.opts()...)
	if err != nil {
		return d.skip(ctx, "stdin", err)
	}
	return loop.Call(ctx)
}

func (d Demo) envKeys(ctx context.Context) error {
	if !d.Config.EnvKeys {
		return nil
	}
	var keys []string
	for _, kv := range d.Environ {
		key, _, _ := strings.Cut(kv, "=")
		keys = append(keys, key)
	}
	slices.Sort(keys)
	loop, err := loopkit.FromEnumeration(printer[string](d.Stdout, "env"), loopkit.Enumerate(keys), d.opts()...)
	if err != nil {
		return d.skip(ctx, "env", err)
	}
	return loop.Call(ctx)
}

type scannerIterator struct{ *bufio.Scanner }

func (i scannerIterator) Next() bool { return i.Scan() }

func (i scannerIterator) Value() string { return i.Text() }
