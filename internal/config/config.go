package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Recording modes.
const (
	ModeWAV        = "wav"
	ModeTranscribe = "transcribe"
)

// Config holds all application configuration.
type Config struct {
	Mode       string           `yaml:"mode"` // "wav" or "transcribe"
	Hotkey     HotkeyConfig     `yaml:"hotkey"`
	Audio      AudioConfig      `yaml:"audio"`
	Output     OutputConfig     `yaml:"output"`
	Transcribe TranscribeConfig `yaml:"transcribe"`
	Inject     InjectConfig     `yaml:"inject"`
	LogLevel   string           `yaml:"log_level"`
	LogFile    string           `yaml:"log_file"`
}

// HotkeyConfig holds the record key combination. Recording lasts while
// every key in Keys is held.
type HotkeyConfig struct {
	Keys []string `yaml:"keys"`
}

// AudioConfig holds audio capture settings. Capture is always mono int16.
type AudioConfig struct {
	Backend     string `yaml:"backend"` // "malgo" or "portaudio"
	SampleRate  uint32 `yaml:"sample_rate"`
	DeviceIndex int    `yaml:"device_index"` // -1 selects the default device
}

// OutputConfig holds WAV export settings.
type OutputConfig struct {
	WAVPath string `yaml:"wav_path"`
}

// TranscribeConfig holds speech-to-text settings. Language and timestamps
// are fixed for the lifetime of the process.
type TranscribeConfig struct {
	ModelPath  string `yaml:"model_path"`
	Language   string `yaml:"language"`
	Timestamps bool   `yaml:"timestamps"`
	Threads    uint   `yaml:"threads"`
}

// InjectConfig controls whether transcripts are also sent to the focused
// application.
type InjectConfig struct {
	Method string `yaml:"method"` // "none", "type" or "paste"
}

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "holdscribe")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// DefaultModelsDir returns the directory whisper models are downloaded to.
func DefaultModelsDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "holdscribe", "models")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "holdscribe", "holdscribe.log")
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mode: ModeTranscribe,
		Hotkey: HotkeyConfig{
			Keys: []string{"space"},
		},
		Audio: AudioConfig{
			Backend:     "malgo",
			SampleRate:  16000,
			DeviceIndex: -1,
		},
		Output: OutputConfig{
			WAVPath: "recording.wav",
		},
		Transcribe: TranscribeConfig{
			ModelPath:  filepath.Join(DefaultModelsDir(), "ggml-large-v3.bin"),
			Language:   "de",
			Timestamps: true,
		},
		Inject: InjectConfig{
			Method: "none",
		},
		LogLevel: "info",
		LogFile:  DefaultLogPath(),
	}
}

// Load reads and parses a YAML config file. Missing fields are filled
// with defaults. Tilde (~) in paths is expanded to the user's home directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.Transcribe.ModelPath = expandTilde(cfg.Transcribe.ModelPath)
	cfg.Output.WAVPath = expandTilde(cfg.Output.WAVPath)
	cfg.LogFile = expandTilde(cfg.LogFile)

	return cfg, nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeWAV:
		if c.Output.WAVPath == "" {
			return fmt.Errorf("output.wav_path must not be empty in wav mode")
		}
	case ModeTranscribe:
		if c.Transcribe.ModelPath == "" {
			return fmt.Errorf("transcribe.model_path must not be empty in transcribe mode")
		}
		if c.Transcribe.Language == "" {
			return fmt.Errorf("transcribe.language must not be empty (use \"auto\" to detect)")
		}
	default:
		return fmt.Errorf("mode must be %q or %q, got %q", ModeWAV, ModeTranscribe, c.Mode)
	}

	if len(c.Hotkey.Keys) == 0 {
		return fmt.Errorf("hotkey.keys must not be empty")
	}
	for _, k := range c.Hotkey.Keys {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("hotkey.keys must not contain empty key names")
		}
	}

	switch c.Audio.Backend {
	case "malgo", "portaudio":
	default:
		return fmt.Errorf("audio.backend must be \"malgo\" or \"portaudio\", got %q", c.Audio.Backend)
	}

	if c.Audio.SampleRate == 0 {
		return fmt.Errorf("audio.sample_rate must be > 0")
	}

	if c.Audio.DeviceIndex < -1 {
		return fmt.Errorf("audio.device_index must be >= -1, got %d", c.Audio.DeviceIndex)
	}

	switch c.Inject.Method {
	case "none", "type", "paste":
	default:
		return fmt.Errorf("inject.method must be \"none\", \"type\" or \"paste\", got %q", c.Inject.Method)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}

	return nil
}

// ParseLogLevel maps a config log level name to a zerolog level.
// Unknown names map to info.
func ParseLogLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// WriteDefault writes the default configuration to path, creating parent
// directories. It does nothing if path already exists.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return false, fmt.Errorf("encoding default config: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("# holdscribe configuration\n")
	buf.WriteString("# mode: wav | transcribe; audio.device_index: -1 selects the system default\n")
	buf.Write(data)

	if err := atomic.WriteFile(path, &buf); err != nil {
		return false, fmt.Errorf("writing config file: %w", err)
	}
	return true, nil
}

// expandTilde replaces a leading ~ with the user's home directory.
func expandTilde(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
