// ============================================================================
// The Last Supper - Command Line Interface
// ============================================================================
//
// Package: internal/cli
// File: cli.go
// Purpose: Cobra command tree for the simulation driver
//
// Command structure:
//   philo                          # Root command
//   ├── run                        # Run a simulation
//   │   ├── [count die eat sleep [meals]]   # classic positional form
//   │   ├── --philosophers, -n
//   │   ├── --time-to-die / --time-to-eat / --time-to-sleep (ms)
//   │   ├── --meals                # per-philosopher quota, -1 = unbounded
//   │   ├── --log-file             # JSON event log export
//   │   └── --metrics / --metrics-port
//   ├── check                      # Validate config, print derived params
//   ├── --config, -c               # YAML config file
//   └── --version
//
// Parameter precedence: defaults < config file < flags < positional args.
//
// Examples:
//   philo run 5 800 200 200 7
//   philo run -n 5 --time-to-die 800 --time-to-eat 200 --time-to-sleep 200
//   philo run -c configs/default.yaml --metrics --log-file events.json
//
// ============================================================================

package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/hosu-kim/the-last-supper/internal/clock"
	"github.com/hosu-kim/the-last-supper/internal/config"
	"github.com/hosu-kim/the-last-supper/internal/metrics"
	"github.com/hosu-kim/the-last-supper/internal/report"
	"github.com/hosu-kim/the-last-supper/internal/simulation"
)

var log = slog.Default()

var configFile string

// BuildCLI assembles the root command.
func BuildCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "philo",
		Short: "The Last Supper: a dining philosophers simulation",
		Long: `The Last Supper simulates philosophers competing for forks around a ring
to study deadlock avoidance and starvation detection. A run ends when a
philosopher starves (Died) or every philosopher reaches the meal quota
(AllSatisfied).`,
		Version: "1.0.0",
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file path")

	rootCmd.AddCommand(buildRunCommand())
	rootCmd.AddCommand(buildCheckCommand())

	return rootCmd
}

// runFlags carries the run command's flag values; whether a flag was actually
// set is read from the cobra flag set so file values are not clobbered by
// defaults.
type runFlags struct {
	philosophers int
	timeToDie    int64
	timeToEat    int64
	timeToSleep  int64
	meals        int
	logFile      string
	metricsOn    bool
	metricsPort  int
}

func buildRunCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run [count time_to_die time_to_eat time_to_sleep [meals]]",
		Short: "Run a dining philosophers simulation",
		Long:  "Run the simulation until a philosopher starves or everyone reaches the meal quota",
		Args:  cobra.MaximumNArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, args, flags)
			if err != nil {
				return err
			}
			return runSimulation(cfg)
		},
	}

	cmd.Flags().IntVarP(&flags.philosophers, "philosophers", "n", 5, "number of philosophers (and forks)")
	cmd.Flags().Int64Var(&flags.timeToDie, "time-to-die", 800, "ms without a meal before a philosopher dies")
	cmd.Flags().Int64Var(&flags.timeToEat, "time-to-eat", 200, "ms a meal takes")
	cmd.Flags().Int64Var(&flags.timeToSleep, "time-to-sleep", 200, "ms a philosopher sleeps after eating")
	cmd.Flags().IntVar(&flags.meals, "meals", int(config.Unbounded), "meals each philosopher must eat (-1 = unbounded)")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "write the event log as JSON to this file")
	cmd.Flags().BoolVar(&flags.metricsOn, "metrics", false, "serve Prometheus metrics during the run")
	cmd.Flags().IntVar(&flags.metricsPort, "metrics-port", 9090, "metrics HTTP port")

	return cmd
}

// resolveConfig merges defaults, config file, flags and positional arguments,
// in that order, then validates.
func resolveConfig(cmd *cobra.Command, args []string, flags runFlags) (*config.Config, error) {
	cfg := config.Default()

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	set := cmd.Flags().Changed
	if set("philosophers") {
		cfg.Simulation.Philosophers = flags.philosophers
	}
	if set("time-to-die") {
		cfg.Simulation.TimeToDieMS = flags.timeToDie
	}
	if set("time-to-eat") {
		cfg.Simulation.TimeToEatMS = flags.timeToEat
	}
	if set("time-to-sleep") {
		cfg.Simulation.TimeToSleepMS = flags.timeToSleep
	}
	if set("meals") {
		cfg.Simulation.RequiredMeals = config.MealQuota(flags.meals)
	}
	if set("log-file") {
		cfg.Log.File = flags.logFile
	}
	if set("metrics") {
		cfg.Metrics.Enabled = flags.metricsOn
	}
	if set("metrics-port") {
		cfg.Metrics.Port = flags.metricsPort
	}

	if len(args) > 0 {
		if err := applyPositionalArgs(&cfg.Simulation, args); err != nil {
			return nil, err
		}
	}

	if err := cfg.Simulation.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyPositionalArgs parses the classic argument form:
// count time_to_die time_to_eat time_to_sleep [meals].
func applyPositionalArgs(sim *config.Simulation, args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("expected 4 or 5 positional arguments, got %d", len(args))
	}

	values := make([]int64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid argument %q: %w", arg, err)
		}
		values[i] = v
	}

	sim.Philosophers = int(values[0])
	sim.TimeToDieMS = values[1]
	sim.TimeToEatMS = values[2]
	sim.TimeToSleepMS = values[3]
	if len(args) == 5 {
		sim.RequiredMeals = config.MealQuota(values[4])
	} else {
		sim.RequiredMeals = config.Unbounded
	}
	return nil
}

// runSimulation wires reporters, metrics and the engine, runs it, and prints
// the final classification.
func runSimulation(cfg *config.Config) error {
	console := report.NewConsole(os.Stdout)
	var out report.Reporter = console

	var recorder *report.Recorder
	if cfg.Log.File != "" {
		recorder = report.NewRecorder()
		out = report.Tee(console, recorder)
	}

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector()
		collector.SetTableSize(cfg.Simulation.Philosophers)
		out = collector.WrapReporter(out)

		port := cfg.Metrics.Port
		go func() {
			log.Info("Starting metrics server", "port", port)
			if err := metrics.StartServer(port); err != nil {
				log.Error("Metrics server error", "error", err)
			}
		}()
	}

	sim, err := simulation.New(cfg.Simulation, clock.NewSystem(), out)
	if err != nil {
		return err
	}

	start := time.Now()
	outcome := sim.Run()

	if collector != nil {
		collector.RecordOutcome(outcome, time.Since(start).Seconds())
	}

	if recorder != nil {
		runLog := report.RunLog{
			RunID:   sim.RunID(),
			Config:  cfg.Simulation,
			Events:  recorder.Events(),
			Outcome: outcome,
		}
		if err := report.WriteRunLog(cfg.Log.File, runLog); err != nil {
			return err
		}
		log.Info("Event log written", "path", cfg.Log.File, "events", len(runLog.Events))
	}

	fmt.Println(outcome.String())
	return nil
}

func buildCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [count time_to_die time_to_eat time_to_sleep [meals]]",
		Short: "Validate a configuration and show derived runtime parameters",
		Args:  cobra.MaximumNArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configFile != "" {
				loaded, err := config.Load(configFile)
				if err != nil {
					return err
				}
				cfg = *loaded
			}
			if len(args) > 0 {
				if err := applyPositionalArgs(&cfg.Simulation, args); err != nil {
					return err
				}
			}
			if err := cfg.Simulation.Validate(); err != nil {
				return err
			}
			printCheck(cfg.Simulation)
			return nil
		},
	}
	return cmd
}

func printCheck(sim config.Simulation) {
	meals := "unbounded"
	if sim.RequiredMeals.Bounded() {
		meals = strconv.Itoa(int(sim.RequiredMeals))
	}

	fmt.Println("Configuration:")
	fmt.Printf("  philosophers:     %d\n", sim.Philosophers)
	fmt.Printf("  time_to_die:      %dms\n", sim.TimeToDieMS)
	fmt.Printf("  time_to_eat:      %dms\n", sim.TimeToEatMS)
	fmt.Printf("  time_to_sleep:    %dms\n", sim.TimeToSleepMS)
	fmt.Printf("  required_meals:   %s\n", meals)
	fmt.Println("Derived:")
	fmt.Printf("  monitor poll:     %s\n", simulation.PollInterval(sim.TimeToDieMS))
	fmt.Printf("  even-seat stagger: %dms\n", sim.TimeToEatMS/2)
	if sim.Philosophers%2 == 1 {
		fmt.Println("  think pause:      100µs (odd ring)")
	} else {
		fmt.Println("  think pause:      none (even ring)")
	}
}
