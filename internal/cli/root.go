// Package cli implements the parambuf command line tool.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/momentics/parambuf/api"
	"github.com/momentics/parambuf/buffer"
	"github.com/momentics/parambuf/control"
	"github.com/momentics/parambuf/param"
	"github.com/momentics/parambuf/pool"
)

var (
	configPath string
	logLevel   string
)

// env carries everything a subcommand needs, built once per invocation.
type env struct {
	cfg     *control.Config
	pool    *pool.ArrayPool[*api.Parameter]
	factory *param.Factory
	tracker *buffer.Tracker
	metrics *control.MetricsRegistry
	probes  *control.DebugProbes
}

func (e *env) bufferOptions() []buffer.Option {
	return buffer.FromConfig(e.cfg.Buffer, e.tracker)
}

var current *env

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "parambuf",
	Short: "Exercise pooled database parameter buffers",
	Long: `parambuf stages command parameters in arrays rented from a shared pool
and shows how the array, slice and list presentations behave.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := control.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level = logLevel
		}
		l, err := control.NewLogger(cfg.Log.Level)
		if err != nil {
			return err
		}
		control.SetLogger(l)
		current = newEnv(cfg)
		control.Logger().Debug("configuration loaded",
			zap.String("path", configPath),
			zap.Int("min_array_length", cfg.Pool.MinArrayLength),
			zap.Bool("debug", cfg.Buffer.Debug))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = control.Logger().Sync()
	},
}

func newEnv(cfg *control.Config) *env {
	e := &env{
		cfg:     cfg,
		pool:    pool.NewParameterPool(cfg),
		factory: param.NewFactory(),
		tracker: buffer.NewTracker(),
		metrics: control.NewMetricsRegistry(),
		probes:  control.NewDebugProbes(),
	}
	e.probes.RegisterProbe("buffers", e.tracker.Probe())
	e.probes.RegisterProbe("pool", func() any { return e.pool.Stats() })
	return e
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", control.DefaultLogLevel, "log level (debug, info, warn, error)")
}
