package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eventsqa/harness/internal/cleanup"
)

func newCleanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clean [collection...]",
		Short: "Delete every document from the tracked collections",
		Long: "Delete every document from the given collections, or from all tracked\n" +
			"collections when none is named.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			c := cleanup.NewCleaner(a.cfg.Mongo)
			if err := c.Connect(ctx); err != nil {
				return err
			}
			defer func() {
				if err := c.Disconnect(context.WithoutCancel(ctx)); err != nil {
					zap.S().Named("clean").Errorw("failed to disconnect", "error", err)
				}
			}()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				if err := c.CleanAll(ctx); err != nil {
					return err
				}
				counts, err := c.Counts(ctx)
				if err != nil {
					return err
				}
				for _, name := range c.Collections() {
					fmt.Fprintf(out, "%-15s %d documents left\n", name, counts[name])
				}
				return nil
			}

			return cleanCollections(ctx, out, c, args)
		},
	}
}

type collectionCleaner interface {
	CleanCollection(ctx context.Context, name string) (int64, error)
}

// cleanCollections empties every named collection, reporting each one, and
// returns the joined errors of those that failed.
func cleanCollections(ctx context.Context, out io.Writer, c collectionCleaner, names []string) error {
	var errs []error
	for _, name := range names {
		n, err := c.CleanCollection(ctx, name)
		if err != nil {
			color.New(color.FgRed).Fprintf(out, "%-15s %v\n", name, err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		color.New(color.FgGreen).Fprintf(out, "%-15s %d documents deleted\n", name, n)
	}
	return errors.Join(errs...)
}
