package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ModeTranscribe, cfg.Mode)
	assert.Equal(t, []string{"space"}, cfg.Hotkey.Keys)
	assert.Equal(t, "malgo", cfg.Audio.Backend)
	assert.Equal(t, uint32(16000), cfg.Audio.SampleRate)
	assert.Equal(t, -1, cfg.Audio.DeviceIndex)
	assert.Equal(t, "recording.wav", cfg.Output.WAVPath)
	assert.Equal(t, "de", cfg.Transcribe.Language)
	assert.True(t, cfg.Transcribe.Timestamps)
	assert.Equal(t, "ggml-large-v3.bin", filepath.Base(cfg.Transcribe.ModelPath))
	assert.Equal(t, "none", cfg.Inject.Method)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.LogFile)

	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
mode: wav
hotkey:
  keys: ["ctrl", "shift", "r"]
audio:
  backend: portaudio
  sample_rate: 44100
  device_index: 3
output:
  wav_path: /tmp/out.wav
transcribe:
  model_path: /tmp/test-model.bin
  language: en
  timestamps: false
  threads: 4
inject:
  method: paste
log_level: debug
log_file: /tmp/holdscribe.log
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ModeWAV, cfg.Mode)
	assert.Equal(t, []string{"ctrl", "shift", "r"}, cfg.Hotkey.Keys)
	assert.Equal(t, "portaudio", cfg.Audio.Backend)
	assert.Equal(t, uint32(44100), cfg.Audio.SampleRate)
	assert.Equal(t, 3, cfg.Audio.DeviceIndex)
	assert.Equal(t, "/tmp/out.wav", cfg.Output.WAVPath)
	assert.Equal(t, "/tmp/test-model.bin", cfg.Transcribe.ModelPath)
	assert.Equal(t, "en", cfg.Transcribe.Language)
	assert.False(t, cfg.Transcribe.Timestamps)
	assert.Equal(t, uint(4), cfg.Transcribe.Threads)
	assert.Equal(t, "paste", cfg.Inject.Method)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/holdscribe.log", cfg.LogFile)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
mode: wav
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ModeWAV, cfg.Mode)
	assert.Equal(t, uint32(16000), cfg.Audio.SampleRate)
	assert.Equal(t, "recording.wav", cfg.Output.WAVPath)
	assert.Equal(t, []string{"space"}, cfg.Hotkey.Keys)
}

func TestLoadExpandsTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	path := writeConfig(t, `
output:
  wav_path: ~/rec/out.wav
transcribe:
  model_path: ~/models/test.bin
log_file: ~/logs/h.log
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "models/test.bin"), cfg.Transcribe.ModelPath)
	assert.Equal(t, filepath.Join(home, "rec/out.wav"), cfg.Output.WAVPath)
	assert.Equal(t, filepath.Join(home, "logs/h.log"), cfg.LogFile)
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "mode: [unterminated")

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{name: "valid default", modify: func(c *Config) {}},
		{name: "valid wav mode", modify: func(c *Config) { c.Mode = ModeWAV }},
		{name: "wav mode ignores empty model path", modify: func(c *Config) {
			c.Mode = ModeWAV
			c.Transcribe.ModelPath = ""
		}},
		{name: "unknown mode", modify: func(c *Config) { c.Mode = "both" }, wantErr: true},
		{name: "wav mode empty path", modify: func(c *Config) {
			c.Mode = ModeWAV
			c.Output.WAVPath = ""
		}, wantErr: true},
		{name: "transcribe empty model", modify: func(c *Config) { c.Transcribe.ModelPath = "" }, wantErr: true},
		{name: "transcribe empty language", modify: func(c *Config) { c.Transcribe.Language = "" }, wantErr: true},
		{name: "empty keys", modify: func(c *Config) { c.Hotkey.Keys = nil }, wantErr: true},
		{name: "blank key", modify: func(c *Config) { c.Hotkey.Keys = []string{"ctrl", " "} }, wantErr: true},
		{name: "unknown backend", modify: func(c *Config) { c.Audio.Backend = "jack" }, wantErr: true},
		{name: "zero sample rate", modify: func(c *Config) { c.Audio.SampleRate = 0 }, wantErr: true},
		{name: "explicit device", modify: func(c *Config) { c.Audio.DeviceIndex = 9 }},
		{name: "negative device", modify: func(c *Config) { c.Audio.DeviceIndex = -2 }, wantErr: true},
		{name: "inject type", modify: func(c *Config) { c.Inject.Method = "type" }},
		{name: "unknown inject", modify: func(c *Config) { c.Inject.Method = "ble" }, wantErr: true},
		{name: "invalid log level", modify: func(c *Config) { c.LogLevel = "invalid" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWriteDefault_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	written, err := WriteDefault(path)
	require.NoError(t, err)
	assert.True(t, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed Config
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	assert.Equal(t, ModeTranscribe, parsed.Mode)
	assert.Equal(t, uint32(16000), parsed.Audio.SampleRate)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
}

func TestWriteDefault_NoOpIfExists(t *testing.T) {
	path := writeConfig(t, "mode: wav\n")

	written, err := WriteDefault(path)
	require.NoError(t, err)
	assert.False(t, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mode: wav\n", string(data))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.input))
		})
	}
}
