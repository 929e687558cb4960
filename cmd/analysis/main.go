// Command analysis compares SymNMF and k-means clustering of a point file
// by their mean silhouette coefficient.
//
// Usage:
//
//	analysis [flags] <k> <file>
//
// Requires 2 ≤ k < n. Prints:
//
//	nmf: 0.1234
//	kmeans: 0.1234
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/katalvlaran/symnmf/dataset"
	"github.com/katalvlaran/symnmf/internal/cli"
	"github.com/katalvlaran/symnmf/pipeline"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Main(ctx, "analysis", os.Args[1:], os.Stdout, os.Stderr, run)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, env cli.Env, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("want <k> <file>, got %d arguments: %w", len(args), cli.ErrUsage)
	}
	k, err := cli.ParseK(args[0])
	if err != nil {
		return err
	}
	ds, err := dataset.Load(args[1])
	if err != nil {
		return err
	}
	cmp, err := pipeline.Compare(ctx, ds, k, env.Config, env.Log)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(env.Stdout, "nmf: %.4f\nkmeans: %.4f\n", cmp.NMF, cmp.KMeans)

	return err
}
