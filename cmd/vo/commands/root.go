package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/vo"
	_ "github.com/gogpu/vo/backend/gl"
	_ "github.com/gogpu/vo/backend/null"
	_ "github.com/gogpu/vo/backend/vulkan"
	"github.com/gogpu/vo/output"
	"github.com/gogpu/vo/pipeline"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "vo",
		Short: "vo - GPU video output pipeline tools",
		Long: `vo drives the GPU video presentation pipeline outside of a player.

It lists the GPU backends usable on this machine, checks custom LUT and
hook shader files, prints the effective pipeline configuration and runs
synthetic frames through a complete output session.

Configuration is read from a YAML file (--config), VO_* environment
variables and flags, in increasing order of precedence.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("backend", "auto", "backend name (auto, vulkan, gl, null)")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("backend", rootCmd.PersistentFlags().Lookup("backend"))

	viper.SetEnvPrefix("VO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

// setup reads the config file and installs the logger.
func setup(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log_level"))); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	vo.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig returns the session configuration from viper.
func loadConfig() (output.Config, error) {
	opts, err := pipeline.Load(viper.GetViper(), "pipeline")
	if err != nil {
		return output.Config{}, err
	}
	return output.Config{Backend: viper.GetString("backend"), Pipeline: opts}, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
