package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gpahal/mtrand/http/client"
	"github.com/gpahal/mtrand/log"
	"github.com/gpahal/mtrand/random"
)

type app struct {
	cfg    *Config
	logger zerolog.Logger
	random *random.Random
	source source
}

type rootFlags struct {
	configPath string
	seed       uint32
	logFormat  string
	logLevel   string
	remote     string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "mtrand",
		Short: "Seeded random values from a Mersenne Twister",
		Long: `mtrand draws uniform numbers, weighted indices, random strings and
shuffles from a seedable MT19937 generator.

The generator commands run locally unless --remote points at a running
"mtrand serve", in which case they call its HTTP API.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd, flags)
		},
		SilenceUsage: true,
	}

	defaults := DefaultConfig()
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", os.Getenv("MTRAND_CONFIG"), "JSON config file (env: MTRAND_CONFIG)")
	rootCmd.PersistentFlags().Uint32Var(&flags.seed, "seed", 0, "Generator seed (default: system entropy)")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", defaults.LogFormat, "Log format: console, json")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", defaults.LogLevel, "Log level")
	rootCmd.PersistentFlags().StringVar(&flags.remote, "remote", "", "Base url of an mtrand server to draw from")

	rootCmd.AddCommand(newFloatCmd(a))
	rootCmd.AddCommand(newIntCmd(a))
	rootCmd.AddCommand(newIndexCmd(a))
	rootCmd.AddCommand(newStringCmd(a))
	rootCmd.AddCommand(newShuffleCmd(a))
	rootCmd.AddCommand(newServeCmd(a))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) init(cmd *cobra.Command, flags rootFlags) error {
	cfg, err := LoadConfig(flags.configPath)
	if err != nil {
		return err
	}

	pf := cmd.Flags()
	if pf.Changed("seed") {
		cfg.Seed = &flags.seed
	}
	if pf.Changed("log-format") || flags.configPath == "" {
		cfg.LogFormat = flags.logFormat
	}
	if pf.Changed("log-level") || flags.configPath == "" {
		cfg.LogLevel = flags.logLevel
	}
	if pf.Changed("remote") {
		cfg.Remote = flags.remote
	}
	a.cfg = cfg

	a.logger, err = log.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return err
	}

	if cfg.Seed != nil {
		a.random = random.NewWithSeed(*cfg.Seed)
		a.logger.Debug().Uint32("seed", *cfg.Seed).Msg("seeded generator")
	} else {
		a.random = random.New()
	}

	if cfg.Remote == "" {
		a.source = &localSource{random: a.random, charset: a.charset()}
		return nil
	}

	rc, err := client.NewRandomClient(client.Options{
		BaseUrlString: cfg.Remote,
		Timeout:       cfg.Client.Timeout,
		RetryOpts:     client.DefaultRetryOptions(cfg.Client.MaxAttempts, cfg.Client.RetryTimeout, a.random),
	})
	if err != nil {
		return err
	}
	a.source = &remoteSource{client: rc}
	a.logger.Debug().Str("remote", cfg.Remote).Msg("using remote generator")
	return nil
}

func (a *app) charset() string {
	if a.cfg.Charset == "" {
		return random.Alphanumeric
	}
	return a.cfg.Charset
}

func (a *app) println(cmd *cobra.Command, v any) {
	fmt.Fprintln(cmd.OutOrStdout(), v)
}
