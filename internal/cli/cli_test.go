package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hosu-kim/the-last-supper/internal/config"
)

func TestBuildCLI(t *testing.T) {
	cmd := BuildCLI()

	assert.NotNil(t, cmd, "BuildCLI should return a non-nil command")
	assert.Equal(t, "philo", cmd.Use, "Root command should be 'philo'")
	assert.Equal(t, "1.0.0", cmd.Version)

	commands := cmd.Commands()
	commandNames := make(map[string]bool)
	for _, c := range commands {
		commandNames[c.Name()] = true
	}
	assert.True(t, commandNames["run"], "Should have 'run' command")
	assert.True(t, commandNames["check"], "Should have 'check' command")

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag, "Should have --config flag")
	assert.Equal(t, "c", configFlag.Shorthand)
	assert.Equal(t, "", configFlag.DefValue, "No config file by default")
}

func TestBuildRunCommand(t *testing.T) {
	cmd := buildRunCommand()

	assert.Equal(t, "run", cmd.Name())
	assert.NotNil(t, cmd.RunE)

	for _, name := range []string{
		"philosophers", "time-to-die", "time-to-eat", "time-to-sleep",
		"meals", "log-file", "metrics", "metrics-port",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "Should have --%s flag", name)
	}

	assert.Equal(t, "n", cmd.Flags().Lookup("philosophers").Shorthand)
	assert.Equal(t, "-1", cmd.Flags().Lookup("meals").DefValue, "meals default to unbounded")
}

func TestApplyPositionalArgs(t *testing.T) {
	sim := config.Default().Simulation

	err := applyPositionalArgs(&sim, []string{"5", "800", "200", "200", "7"})
	require.NoError(t, err)

	assert.Equal(t, 5, sim.Philosophers)
	assert.Equal(t, int64(800), sim.TimeToDieMS)
	assert.Equal(t, int64(200), sim.TimeToEatMS)
	assert.Equal(t, int64(200), sim.TimeToSleepMS)
	assert.Equal(t, config.MealQuota(7), sim.RequiredMeals)
}

func TestApplyPositionalArgs_NoMeals(t *testing.T) {
	sim := config.Default().Simulation
	sim.RequiredMeals = 3 // must be overridden back to unbounded

	err := applyPositionalArgs(&sim, []string{"4", "410", "100", "100"})
	require.NoError(t, err)

	assert.Equal(t, 4, sim.Philosophers)
	assert.Equal(t, config.Unbounded, sim.RequiredMeals)
}

func TestApplyPositionalArgs_TooFew(t *testing.T) {
	sim := config.Default().Simulation
	err := applyPositionalArgs(&sim, []string{"5", "800"})
	assert.Error(t, err)
}

func TestApplyPositionalArgs_NotANumber(t *testing.T) {
	sim := config.Default().Simulation
	err := applyPositionalArgs(&sim, []string{"5", "800", "abc", "200"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid argument")
}

func TestResolveConfig_FlagsOverrideFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	content := `
simulation:
  philosophers: 3
  time_to_die_ms: 500
  time_to_eat_ms: 100
  time_to_sleep_ms: 100
  required_meals: 2
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	prev := configFile
	configFile = configPath
	defer func() { configFile = prev }()

	cmd := buildRunCommand()
	require.NoError(t, cmd.Flags().Set("philosophers", "7"))

	flags := runFlags{philosophers: 7}
	cfg, err := resolveConfig(cmd, nil, flags)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Simulation.Philosophers, "flag wins over file")
	assert.Equal(t, int64(500), cfg.Simulation.TimeToDieMS, "file value survives for unset flags")
	assert.Equal(t, config.MealQuota(2), cfg.Simulation.RequiredMeals)
}

func TestResolveConfig_PositionalArgsWinOverFlags(t *testing.T) {
	cmd := buildRunCommand()
	require.NoError(t, cmd.Flags().Set("philosophers", "9"))

	flags := runFlags{philosophers: 9}
	cfg, err := resolveConfig(cmd, []string{"2", "310", "100", "100", "5"}, flags)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Simulation.Philosophers)
	assert.Equal(t, int64(310), cfg.Simulation.TimeToDieMS)
	assert.Equal(t, config.MealQuota(5), cfg.Simulation.RequiredMeals)
}

func TestResolveConfig_RejectsInvalid(t *testing.T) {
	cmd := buildRunCommand()

	cfg, err := resolveConfig(cmd, []string{"0", "800", "200", "200"}, runFlags{})

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, config.ErrPhilosopherCount)
}

func TestCheckCommand(t *testing.T) {
	root := BuildCLI()
	root.SetArgs([]string{"check", "5", "800", "200", "200", "7"})

	assert.NoError(t, root.Execute())
}

func TestCheckCommand_InvalidConfig(t *testing.T) {
	root := BuildCLI()
	root.SetArgs([]string{"check", "0", "800", "200", "200"})
	root.SilenceErrors = true
	root.SilenceUsage = true

	err := root.Execute()
	assert.ErrorIs(t, err, config.ErrPhilosopherCount)
}
