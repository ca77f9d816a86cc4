package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configInitForceFlag bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage relnotes configuration",
	Long: `Manage relnotes configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Command line flags
  2. Environment variables (RELNOTES_*)
  3. Project config (.relnotes/config.yml or .relnotes/config.json)
  4. User config (~/.config/relnotes/config.yml)
  5. Built-in defaults`,
	Example: `  # Show the effective configuration
  relnotes config show

  # List every configuration key
  relnotes config keys

  # Create .relnotes/config.yml with defaults
  relnotes config init`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadWithOptions(config.LoadOptions{
			ProjectConfigPath: configFlag,
			WarningWriter:     cmd.ErrOrStderr(),
		})
		if err != nil {
			return clierrors.InvalidConfig(err)
		}

		out, err := yaml.Marshal(configValues(cfg))
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List configuration keys with their defaults",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		cyan := color.New(color.FgCyan).SprintFunc()
		dim := color.New(color.Faint).SprintFunc()

		for _, key := range config.SortedKeys() {
			schema := config.KnownKeys[key]
			fmt.Fprintf(out, "%s (%s, default %v)\n", cyan(key), schema.Type, schema.Default)
			fmt.Fprintf(out, "    %s\n", schema.Description)
			fmt.Fprintf(out, "    %s\n", dim("env: "+config.EnvVarName(key)))
		}
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .relnotes/config.yml with default values",
	Long: `Create a commented project config at .relnotes/config.yml.

An existing file is left unchanged unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configCmd.GroupID = GroupInfo
	configCmd.AddCommand(configShowCmd, configKeysCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)

	configInitCmd.Flags().BoolVarP(&configInitForceFlag, "force", "f", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.ProjectConfigPath()
	if rootFlag != "" {
		path = filepath.Join(rootFlag, path)
	}
	out := cmd.ErrOrStderr()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	if _, err := os.Stat(path); err == nil && !configInitForceFlag {
		fmt.Fprintf(out, "%s %s already exists (use --force to overwrite)\n", yellow("⚠"), path)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "creating config directory")
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing config file")
	}

	fmt.Fprintf(out, "%s Created %s\n", green("✓"), path)
	return nil
}

// configValues flattens cfg into its config-file keys.
func configValues(cfg *config.Configuration) map[string]any {
	return map[string]any{
		"project_root":    cfg.ProjectRoot,
		"changelog_file":  cfg.ChangelogFile,
		"output_file":     cfg.OutputFile,
		"heading_level":   cfg.HeadingLevel,
		"skip_unreleased": cfg.SkipUnreleased,
		"watch_debounce":  cfg.WatchDebounce.String(),
	}
}
