// Command kmcsim runs the kinetic Monte Carlo social-graph simulation
// engine to completion against a YAML config file, emitting periodic
// summary tuples to stdout, a DATA_vs_TIME file, and optionally a
// sqlite database.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"kmcsim/internal/cancelctl"
	"kmcsim/internal/kmcconfig"
	"kmcsim/internal/sim"
	"kmcsim/internal/summary"
)

var (
	configPath string
	seed       int64
	logPath    string
	dataPath   string
	sqlitePath string
	dumpConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kmcsim",
	Short: "Run the kinetic Monte Carlo social-graph simulation engine",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "kmc.yaml", "path to the simulation config YAML file")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "RNG seed (0 derives one from the current time)")
	rootCmd.Flags().StringVar(&logPath, "out", "kmcsim.log", "path to the diagnostic log file")
	rootCmd.Flags().StringVar(&dataPath, "data", "DATA_vs_TIME", "path to the tab-delimited summary file")
	rootCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "optional path to a sqlite database for summary snapshots")
	rootCmd.Flags().StringVar(&dumpConfig, "dump-config", "", "write the loaded, validated config back out to this path and exit, without running")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := kmcconfig.Load(configPath)
	if err != nil {
		return fmt.Errorf("kmcsim: %w", err)
	}

	if dumpConfig != "" {
		if err := kmcconfig.Save(dumpConfig, cfg); err != nil {
			return fmt.Errorf("kmcsim: %w", err)
		}
		return nil
	}

	logger, closeLog := kmcconfig.SetupLogger(logPath, slog.LevelInfo)
	defer closeLog()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sink, closeSink, err := buildSink(&cfg)
	if err != nil {
		return fmt.Errorf("kmcsim: %w", err)
	}
	defer closeSink()

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)
	go func() {
		for range interrupts {
			cancelctl.Signal()
			if cancelctl.ShouldAbort() {
				logger.Error("hard abort: repeated interrupt")
				os.Exit(1)
			}
		}
	}()

	logger.Info("starting run", "config", configPath, "seed", seed)

	s := sim.New(&cfg, seed, sink, logger)
	final := s.Run()

	logger.Info("run complete",
		"final_time", final,
		"n_entities", s.Network().NEntities(),
		"n_follows", s.NFollows(),
		"n_tweets", s.NTweets(),
		"n_retweets", s.NRetweets(),
		"n_steps", s.NSteps(),
	)
	return nil
}

// buildSink assembles the DATA_vs_TIME/stdout TabWriter and, if
// requested, a SQLiteSink behind a single MultiSink.
func buildSink(cfg *kmcconfig.Config) (summary.Sink, func() error, error) {
	var closers []io.Closer

	var stdout io.Writer
	if cfg.OutputStdoutSummary {
		stdout = os.Stdout
	}

	dataFile, err := os.Create(dataPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", dataPath, err)
	}
	closers = append(closers, dataFile)

	sinks := []summary.Sink{summary.NewTabWriter(stdout, dataFile, cfg.SummaryHeaderEveryN)}

	if sqlitePath != "" {
		sqliteSink, err := summary.NewSQLiteSink(sqlitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite sink: %w", err)
		}
		sinks = append(sinks, sqliteSink)
	}

	multi := summary.NewMultiSink(sinks...)
	closeAll := func() error {
		err := multi.Close()
		for _, c := range closers {
			if cerr := c.Close(); err == nil {
				err = cerr
			}
		}
		return err
	}
	return multi, closeAll, nil
}
