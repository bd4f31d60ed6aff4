package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/chaz8081/holdscribe/internal/audio"
	"github.com/chaz8081/holdscribe/internal/config"
	"github.com/chaz8081/holdscribe/internal/hotkey"
	"github.com/chaz8081/holdscribe/internal/inject"
	"github.com/chaz8081/holdscribe/internal/logging"
	"github.com/chaz8081/holdscribe/internal/session"
	"github.com/chaz8081/holdscribe/internal/transcribe"
	"github.com/chaz8081/holdscribe/internal/tui"
	"github.com/chaz8081/holdscribe/internal/wavfile"
)

func runTUI(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log, logFile, err := logging.New(cfg.LogFile, config.ParseLogLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer logFile.Close()

	log.Info().
		Str("mode", cfg.Mode).
		Str("backend", cfg.Audio.Backend).
		Uint32("sample_rate", cfg.Audio.SampleRate).
		Strs("keys", cfg.Hotkey.Keys).
		Msg("Starting")

	source, err := audio.NewSource(cfg.Audio.Backend)
	if err != nil {
		return fmt.Errorf("failed to initialize audio backend: %w\n\nEnsure microphone access is granted to the terminal", err)
	}
	defer source.Close()

	devices, err := source.Devices()
	if err != nil {
		return err
	}
	sel, err := audio.NewSelector(devices, cfg.Audio.DeviceIndex)
	if err != nil {
		return err
	}
	log.Info().Int("devices", sel.Len()).Str("device", sel.Label()).Msg("Audio device selected")

	consumer, err := newConsumer(cfg, log)
	if err != nil {
		return err
	}

	ctrl := session.New(source, consumer, cfg.Audio.SampleRate, log)
	defer func() {
		if err := ctrl.Close(); err != nil {
			log.Warn().Err(err).Msg("Closing session")
		}
	}()

	model := tui.New(ctx, ctrl, sel, tui.Options{
		Mode:     cfg.Mode,
		KeyLabel: strings.Join(cfg.Hotkey.Keys, "+"),
		Log:      log,
	})
	p := tea.NewProgram(model)

	// The hotkey listener is never stopped explicitly; main exits the
	// process once the UI is gone.
	listener := hotkey.NewListener(cfg.Hotkey.Keys, log)
	go listener.Start()
	go func() {
		for ev := range listener.Events() {
			log.Debug().Stringer("event", ev.Type).Msg("Record key")
			p.Send(tui.RecordKeyMsg{Down: ev.Type == hotkey.EventDown})
		}
	}()

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	log.Info().Msg("Goodbye")
	return nil
}

// newConsumer builds the recording consumer for cfg.Mode.
func newConsumer(cfg *config.Config, log zerolog.Logger) (session.Consumer, error) {
	if cfg.Mode == config.ModeWAV {
		return wavfile.NewWriter(cfg.Output.WAVPath, int(cfg.Audio.SampleRate)), nil
	}

	fmt.Fprintln(os.Stderr, "Loading whisper model...")
	modelStart := time.Now()
	t, err := transcribe.New(&cfg.Transcribe)
	if err != nil {
		return nil, fmt.Errorf("failed to load whisper model: %w\n\nCheck that the model file exists at: %s\nRun 'holdscribe model download' to fetch it", err, cfg.Transcribe.ModelPath)
	}
	log.Info().
		Str("model", cfg.Transcribe.ModelPath).
		Str("language", cfg.Transcribe.Language).
		Dur("load_time", time.Since(modelStart)).
		Msg("Model loaded")

	// A nil *inject.Injector must not become a non-nil interface value.
	var inj transcribe.Injector
	if i := inject.New(cfg.Inject.Method); i != nil {
		inj = i
		log.Info().Str("method", i.Method()).Msg("Text injection enabled")
	}

	return transcribe.NewConsumer(t, cfg.Transcribe.Timestamps, inj, log), nil
}
