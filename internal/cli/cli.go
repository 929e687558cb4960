// Package cli holds the flag, config, logging and failure handling shared by
// the symnmf and analysis executables.
//
// Every failure is reported the same way: the details go to the zap logger
// on stderr, stdout receives the single line ErrorMessage and the exit code is 1.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/symnmf/config"
	"github.com/katalvlaran/symnmf/logutil"
	"github.com/katalvlaran/symnmf/metrics"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrorMessage is the only failure output on stdout.
const ErrorMessage = "An Error Has Occurred"

// ErrUsage indicates wrong positional arguments.
var ErrUsage = errors.New("cli: usage")

// Env is what a command body receives.
type Env struct {
	Config config.Config
	Log    *zap.Logger
	Stdout io.Writer
}

// Command is the body of an executable; args are the positional arguments.
type Command func(ctx context.Context, env Env, args []string) error

// Flags are the options common to both executables.
type Flags struct {
	ConfigPath string
	LogLevel   string
	Workers    int
	MetricsOut string
}

// Register binds the common flags to fs.
func Register(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.ConfigPath, "config", "", "TOML settings file")
	fs.StringVar(&f.LogLevel, "log-level", "", "log level override (debug, info, warn, error)")
	fs.IntVar(&f.Workers, "workers", 0, "row-block workers for the factorization (0 keeps the config value)")
	fs.StringVar(&f.MetricsOut, "metrics-out", "", "write Prometheus metrics to this file on exit")

	return f
}

// Settings resolves defaults, the config file and flag overrides, in that order.
func (f *Flags) Settings() (config.Config, error) {
	cfg := config.Default()
	if f.ConfigPath != "" {
		var err error
		if cfg, err = config.Load(f.ConfigPath); err != nil {
			return config.Config{}, err
		}
	}
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.Workers != 0 {
		cfg.Runtime.Workers = f.Workers
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// ParseK parses the cluster count argument.
func ParseK(s string) (int, error) {
	k, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("k %q: %w", s, ErrUsage)
	}

	return k, nil
}

// Main parses args, builds the environment, runs cmd and returns the exit code.
func Main(ctx context.Context, name string, args []string, stdout, stderr io.Writer, cmd Command) int {
	sink := zapcore.AddSync(stderr)
	log, _ := logutil.NewWithSink(config.Default().Log, sink)

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := Register(fs)

	err := func() error {
		if err := fs.Parse(args); err != nil {
			return fmt.Errorf("%v: %w", err, ErrUsage)
		}
		cfg, err := flags.Settings()
		if err != nil {
			return err
		}
		configured, err := logutil.NewWithSink(cfg.Log, sink)
		if err != nil {
			return err
		}
		log = configured
		runErr := cmd(ctx, Env{Config: cfg, Log: log.Named(name), Stdout: stdout}, fs.Args())
		if flags.MetricsOut != "" {
			if err = metrics.WriteTextfile(flags.MetricsOut); err != nil && runErr == nil {
				runErr = fmt.Errorf("metrics: %w", err)
			}
		}
		return runErr
	}()
	defer func() { _ = log.Sync() }()

	if err != nil {
		log.Error("command failed", zap.String("command", name), zap.Error(err))
		fmt.Fprintln(stdout, ErrorMessage)
		return 1
	}

	return 0
}
