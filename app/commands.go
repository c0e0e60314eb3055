package app

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paccolamano/lazyalgo/anagram"
	"github.com/paccolamano/lazyalgo/ctxlog"
	"github.com/paccolamano/lazyalgo/password"
	"github.com/paccolamano/lazyalgo/utility"
	"github.com/paccolamano/lazyalgo/window"
)

func (c *cli) passwordCommand() *cobra.Command {
	var hash bool

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Print a 16-character password suggestion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := ctxlog.WithOperation(cmd.Context(), "password")
			g := password.New()

			if !hash {
				p, err := g.Generate()
				if err != nil {
					return err
				}
				c.logger.DebugContext(ctx, "password generated")
				_, err = fmt.Fprintln(cmd.OutOrStdout(), p)
				return err
			}

			p, h, err := g.GenerateHashed()
			if err != nil {
				return err
			}
			c.logger.DebugContext(ctx, "password generated and hashed")
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", p, h)
			return err
		},
	}

	cmd.Flags().BoolVar(&hash, "hash", false, "also print the bcrypt hash of the password")

	return cmd
}

func (c *cli) anagramsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "anagrams WORD...",
		Short: "Group words that are anagrams of each other, one group per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := ctxlog.WithOperation(cmd.Context(), "anagrams")

			groups := anagram.Group(args)
			c.logger.DebugContext(ctx, "anagrams grouped",
				slog.Int("words", len(args)), slog.Int("groups", len(groups)))

			for _, g := range groups {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(g, " ")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (c *cli) maxSumCommand() *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:     "max-sum --window K NUMBER...",
		Short:   "Print the maximum sum of K consecutive numbers",
		Example: "  lazyalgo max-sum --window 3 2 1 5 1 3 2\n  lazyalgo max-sum -k 2 -- -5 -2 -3",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := ctxlog.WithOperation(cmd.Context(), "max-sum")

			numbers, err := utility.MapE(args, parseFinite)
			if err != nil {
				return fmt.Errorf("invalid number: %w", err)
			}

			sum, err := window.MaxSum(numbers, size)
			if err != nil {
				return err
			}

			c.logger.DebugContext(ctx, "max window sum computed",
				slog.Int("numbers", len(numbers)), slog.Int("window_size", size))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(sum, 'g', -1, 64))
			return err
		},
	}

	cmd.Flags().IntVarP(&size, "window", "k", 0, "window size")
	_ = cmd.MarkFlagRequired("window")

	return cmd
}

func (c *cli) longestUniqueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "longest-unique TEXT",
		Short: "Print the longest substring of TEXT without repeated characters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := ctxlog.WithOperation(cmd.Context(), "longest-unique")

			sub := window.LongestUnique(args[0])
			c.logger.DebugContext(ctx, "longest unique substring found", slog.Int("text_bytes", len(args[0])))

			_, err := fmt.Fprintln(cmd.OutOrStdout(), sub)
			return err
		},
	}
}

var errNotFinite = errors.New("value is not finite")

// parseFinite parses s as a float64, rejecting NaN and infinities.
func parseFinite(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q: %w", s, errNotFinite)
	}

	return f, nil
}
