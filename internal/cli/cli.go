// Package cli builds the cpusched command tree.
//
//	cpusched                  # same as "cpusched simulate"
//	├── simulate [file]       # run FCFS, SJF and RR over a process list
//	└── serve                 # HTTP API on the configured port
package cli

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cpusched/api"
	"cpusched/config"
	"cpusched/internal/loader"
	"cpusched/internal/metrics"
	"cpusched/internal/report"
	"cpusched/internal/schedulers"
	"cpusched/internal/util"
)

type simulateOptions struct {
	format     string
	locale     string
	quantum    int
	algorithms []string
}

var configFile string

func BuildCLI() *cobra.Command {
	opts := &simulateOptions{}

	rootCmd := &cobra.Command{
		Use:   "cpusched",
		Short: "Single-processor CPU scheduling simulator",
		Long: `cpusched simulates FCFS, non-preemptive SJF and Round-Robin over a process
list of "<arrival> <burst>" lines and prints the average turnaround,
response and waiting time of each policy.`,
		Version:       "1.0.0",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, args, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default ./config.yaml if present)")
	bindSimulateFlags(rootCmd, opts)

	rootCmd.AddCommand(buildSimulateCommand())
	rootCmd.AddCommand(buildServeCommand())

	return rootCmd
}

func buildSimulateCommand() *cobra.Command {
	opts := &simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate [file]",
		Short: "Simulate every policy over a process list file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, args, opts)
		},
	}
	bindSimulateFlags(cmd, opts)
	return cmd
}

func bindSimulateFlags(cmd *cobra.Command, opts *simulateOptions) {
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: text, table, json, yaml")
	cmd.Flags().StringVar(&opts.locale, "locale", "", "locale for decimal separators, e.g. en or pt-BR")
	cmd.Flags().IntVarP(&opts.quantum, "quantum", "q", 0, "round robin time quantum")
	cmd.Flags().StringSliceVarP(&opts.algorithms, "algorithm", "a", nil, "algorithms to run (fcfs, sjf, rr); default all")
}

func runSimulate(cmd *cobra.Command, args []string, opts *simulateOptions) error {
	cfg, err := config.LoadSchedulerConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyOverrides(cfg, opts)
	if len(args) == 1 {
		cfg.InputFile = args[0]
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	format, err := report.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return err
	}
	printer, err := util.NewPrinter(cfg.OutputLocale)
	if err != nil {
		return err
	}
	selected := make([]schedulers.Algorithm, 0, len(opts.algorithms))
	for _, name := range opts.algorithms {
		algorithm, err := schedulers.ParseAlgorithm(name)
		if err != nil {
			return err
		}
		selected = append(selected, algorithm)
	}

	parsed, err := loader.ParseFile(cfg.InputFile)
	if err != nil {
		return err
	}
	set, err := parsed.ProcessSet()
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.InputFile, err)
	}
	log.Printf("loaded %d processes from %s (%d skipped)\n", set.Len(), cfg.InputFile, len(parsed.Skipped))

	results, err := schedulers.RunAll(set, cfg.RoundRobinTimeQuantum, selected...)
	if err != nil {
		return err
	}
	return report.NewWriter(cmd.OutOrStdout(), format, printer).Write(results)
}

func applyOverrides(cfg *config.SchedulerConfig, opts *simulateOptions) {
	if opts.format != "" {
		cfg.OutputFormat = opts.format
	}
	if opts.locale != "" {
		cfg.OutputLocale = opts.locale
	}
	if opts.quantum != 0 {
		cfg.RoundRobinTimeQuantum = opts.quantum
	}
}

func buildServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the scheduling HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadSchedulerConfig(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if port != 0 {
				cfg.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (default from config, 9095)")
	return cmd
}

func serve(cfg *config.SchedulerConfig) error {
	app := api.NewApp(cfg, metrics.NewCollector())

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		log.Printf("Starting scheduler API on %s\n", addr)
		errCh <- app.Listen(addr)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigChan:
		log.Println("Received shutdown signal, stopping gracefully...")
		return app.Shutdown()
	}
}
