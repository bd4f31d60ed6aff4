package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaz8081/holdscribe/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	out, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.ModeTranscribe, cfg.Mode)

	out, err = execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
}

func TestRootFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: transcribe\naudio:\n  device_index: 1\n"), 0644))

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--mode", "wav", "--device", "3", "--debug"}))

	flags := rootFlags{configPath: path, mode: "wav", device: 3, debug: true}
	cfg, err := flags.load(cmd)
	require.NoError(t, err)

	assert.Equal(t, config.ModeWAV, cfg.Mode)
	assert.Equal(t, 3, cfg.Audio.DeviceIndex)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestDeviceFlagUnsetKeepsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("audio:\n  device_index: 1\n"), 0644))

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path}))

	flags := rootFlags{configPath: path, device: -1}
	cfg, err := flags.load(cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Audio.DeviceIndex)
}

func TestInvalidModeRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: wav\n"), 0644))

	_, err := execute(t, "--config", path, "--mode", "both")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mode")
}

func TestModelDownloadRejectsBadName(t *testing.T) {
	out, err := execute(t, "model", "download", "../evil", "--dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, out, "Downloading model")
	assert.Contains(t, out, "Download failed")
	assert.Contains(t, out, "model=../evil")
}

func TestConsoleLoggerHonorsDebug(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetErr(&out)

	(&rootFlags{}).consoleLogger(cmd).Debug().Msg("quiet")
	assert.Empty(t, out.String())

	(&rootFlags{debug: true}).consoleLogger(cmd).Debug().Msg("loud")
	assert.Contains(t, out.String(), "loud")
}

func TestInjectTestRejectsUnknownMethod(t *testing.T) {
	_, err := execute(t, "inject-test", "--method", "ble")
	require.Error(t, err)
}
