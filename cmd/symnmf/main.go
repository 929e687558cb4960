// Command symnmf prints one of the SymNMF pipeline matrices for a point file.
//
// Usage:
//
//	symnmf [flags] <k> <goal> <file>
//
// goal is one of sym, ddg, norm or symnmf. Every goal requires 0 ≤ k < n;
// symnmf also requires k ≥ 2. The matrix is printed with 4 decimals,
// comma-separated, one row per line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/katalvlaran/symnmf/dataset"
	"github.com/katalvlaran/symnmf/internal/cli"
	"github.com/katalvlaran/symnmf/pipeline"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Main(ctx, "symnmf", os.Args[1:], os.Stdout, os.Stderr, run)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, env cli.Env, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("want <k> <goal> <file>, got %d arguments: %w", len(args), cli.ErrUsage)
	}
	k, err := cli.ParseK(args[0])
	if err != nil {
		return err
	}
	goal, err := pipeline.ParseGoal(args[1])
	if err != nil {
		return err
	}
	ds, err := dataset.Load(args[2])
	if err != nil {
		return err
	}
	env.Log.Debug("input loaded",
		zap.String("goal", goal.String()), zap.Int("k", k),
		zap.Int("n", ds.Len()), zap.Int("d", ds.Dim()))

	m, err := pipeline.Run(ctx, goal, ds, k, env.Config, env.Log)
	if err != nil {
		return err
	}

	return dataset.WriteMatrix(env.Stdout, m)
}
