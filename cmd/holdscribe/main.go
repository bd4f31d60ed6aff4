// Command holdscribe records audio while a key is held and either saves it
// as a WAV file or transcribes it with whisper.cpp.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/chaz8081/holdscribe/internal/config"
	"github.com/chaz8081/holdscribe/internal/logging"
)

type rootFlags struct {
	configPath string
	mode       string
	device     int
	debug      bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "holdscribe",
		Short: "Push-to-talk recorder and transcriber",
		Long: `holdscribe records from a microphone while the record key is held.
On release the recording is saved as a WAV file or transcribed with whisper.cpp
and shown in the text panel.`,
		Example: `  holdscribe
  holdscribe --mode wav
  holdscribe --device 2
  holdscribe devices
  holdscribe model download large-v3`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to config file (default: ~/.config/holdscribe/config.yaml)")
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")

	cmd.Flags().StringVar(&flags.mode, "mode", "", "recording mode: wav or transcribe")
	cmd.Flags().IntVar(&flags.device, "device", -1, "capture device index (-1 selects the system default)")

	cmd.AddCommand(
		newDevicesCmd(&flags),
		newModelCmd(&flags),
		newConfigCmd(&flags),
		newHotkeyTestCmd(&flags),
		newInjectTestCmd(),
	)

	return cmd
}

// load reads the configuration and applies command line overrides.
func (f *rootFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if f.mode != "" {
		cfg.Mode = f.mode
	}
	if cmd.Flags().Changed("device") {
		cfg.Audio.DeviceIndex = f.device
	}
	if f.debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// consoleLogger returns the stderr logger used by the subcommands, at debug
// level when --debug is set.
func (f *rootFlags) consoleLogger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.InfoLevel
	if f.debug {
		level = zerolog.DebugLevel
	}
	return logging.Console(cmd.ErrOrStderr(), level)
}

// loadConfig loads the config from the specified path, or falls back to
// the default config path, or uses built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	defaultPath := config.DefaultConfigPath()
	if _, err := os.Stat(defaultPath); err == nil {
		cfg, err := config.Load(defaultPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", defaultPath, err)
		}
		return cfg, nil
	}

	return config.Default(), nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	// Exit directly to avoid gohook's C cleanup crash.
	// The OS reclaims the event hook on process exit.
	os.Exit(0)
}
