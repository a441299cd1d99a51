package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/buildlog/internal/common"
)

var (
	// Persistent flags
	configFiles []string // Multiple --config flags supported
	logLevel    string
	dataPath    string

	// Global state
	config *common.Config
	logger arbor.ILogger
)

var rootCmd = &cobra.Command{
	Use:               "buildlog",
	Short:             "Parse MSVC/GCC build logs into a build dependency graph",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringArrayVarP(&configFiles, "config", "c", nil, "Configuration file path (can be specified multiple times, later files override earlier ones)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides config)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Run database directory (overrides config)")

	rootCmd.AddCommand(parseCmd, runsCmd, versionCmd)
}

func main() {
	common.InstallCrashHandler(filepath.Join(os.TempDir(), "buildlog"))
	defer common.RecoverWithCrashFile()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup runs the startup sequence (REQUIRED ORDER):
// 1. Load config (defaults -> file1 -> file2 -> ... -> .env -> env)
// 2. Apply CLI overrides (highest priority)
// 3. Validate
// 4. Initialize logger
func setup(cmd *cobra.Command, args []string) error {
	if cmd == versionCmd {
		return nil
	}

	// Auto-discover config file if not specified
	paths := configFiles
	if len(paths) == 0 {
		if _, err := os.Stat("buildlog.toml"); err == nil {
			paths = []string{"buildlog.toml"}
		}
	}

	var err error
	config, err = common.LoadFromFiles(paths...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	common.ApplyFlagOverrides(config, common.FlagOverrides{
		LogLevel: logLevel,
		DataPath: dataPath,
	})

	if err := config.Validate(); err != nil {
		return err
	}

	logger = common.SetupLogger(config)
	logger.Debug().Strs("config_files", paths).Str("version", common.Version).Msg("Configuration loaded")
	return nil
}
