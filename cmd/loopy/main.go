package main

import (
	"context"
	"os"

	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/frameless/pkg/tasker"

	"go.llib.dev/loopy/internal/demo"
)

func main() {
	ctx := logging.ContextWith(context.Background(), logging.Field("app", "loopy"))
	log := &logging.Logger{Out: os.Stderr}

	cfg, err := demo.LoadConfig()
	if err != nil {
		log.Fatal(ctx, "failed to load configuration", logging.ErrField(err))
		os.Exit(1)
	}
	log.Level = cfg.LogLevel

	d := demo.Demo{
		Config:  cfg,
		Args:    os.Args[1:],
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Environ: os.Environ(),
		Logger:  log,
	}
	if err := tasker.Main(ctx, d.Run); err != nil {
		log.Fatal(ctx, "error in main", logging.ErrField(err))
		os.Exit(1)
	}
}
