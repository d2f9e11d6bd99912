package cli

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newFloatCmd(a *app) *cobra.Command {
	var min, max float64

	cmd := &cobra.Command{
		Use:   "float",
		Short: "Print a float in [min,max)",
		Long:  "Print a float in [0,1), in [0,max) when only --max is given, or in [min,max).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.source.Float(cmd.Context(), optional(cmd, "min", min), optional(cmd, "max", max))
			if err != nil {
				return err
			}

			a.println(cmd, strconv.FormatFloat(v, 'g', -1, 64))
			return nil
		},
	}

	cmd.Flags().Float64Var(&min, "min", 0, "Inclusive lower bound")
	cmd.Flags().Float64Var(&max, "max", 0, "Exclusive upper bound")

	return cmd
}

func newIntCmd(a *app) *cobra.Command {
	var min, max int64

	cmd := &cobra.Command{
		Use:   "int",
		Short: "Print an integer in [min,max)",
		Long:  "Print a non-negative int64, an integer in [0,max) when only --max is given, or one in [min,max).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.source.Int(cmd.Context(), optional(cmd, "min", min), optional(cmd, "max", max))
			if err != nil {
				return err
			}

			a.println(cmd, v)
			return nil
		},
	}

	cmd.Flags().Int64Var(&min, "min", 0, "Inclusive lower bound")
	cmd.Flags().Int64Var(&max, "max", 0, "Exclusive upper bound")

	return cmd
}

func newIndexCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "index <weight>...",
		Short: "Print an index chosen with probability proportional to its weight",
		Long:  "Print an index chosen with probability proportional to its weight. All-zero weights are treated as uniform; no weights prints -1.",
		RunE: func(cmd *cobra.Command, args []string) error {
			weights := make([]float64, len(args))
			for i, arg := range args {
				w, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return errors.Wrapf(err, "weight %d", i)
				}
				weights[i] = w
			}

			i, err := a.source.Index(cmd.Context(), weights)
			if err != nil {
				return err
			}

			a.logger.Debug().Int("weights", len(weights)).Int("index", i).Msg("selected index")
			a.println(cmd, i)
			return nil
		},
	}
}

func newStringCmd(a *app) *cobra.Command {
	var (
		length  int
		charset string
	)

	cmd := &cobra.Command{
		Use:   "string",
		Short: "Print a random string",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.source.String(cmd.Context(), length, optional(cmd, "charset", charset))
			if err != nil {
				return err
			}

			a.println(cmd, v)
			return nil
		},
	}

	cmd.Flags().IntVarP(&length, "length", "n", 16, "Number of characters")
	cmd.Flags().StringVar(&charset, "charset", "", "Characters to draw from (default: config charset or A-Za-z0-9)")

	return cmd
}

func newShuffleCmd(a *app) *cobra.Command {
	var (
		biased    bool
		separator string
	)

	cmd := &cobra.Command{
		Use:   "shuffle <item>...",
		Short: "Print the arguments in a random order",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.source.Shuffle(cmd.Context(), args, biased)
			if err != nil {
				return err
			}

			a.println(cmd, strings.Join(out, separator))
			return nil
		},
	}

	cmd.Flags().BoolVar(&biased, "biased", false, "Use the legacy biased shuffle")
	cmd.Flags().StringVar(&separator, "separator", " ", "Output separator")

	return cmd
}

// optional returns nil unless the named flag was given on the command line.
func optional[T any](cmd *cobra.Command, name string, v T) *T {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}
