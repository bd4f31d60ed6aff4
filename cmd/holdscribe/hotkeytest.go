package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chaz8081/holdscribe/internal/hotkey"
)

// newHotkeyTestCmd logs record key events so the key combination can be
// checked without opening an audio device.
func newHotkeyTestCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "hotkey-test",
		Short: "Print record key down/up events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			log := flags.consoleLogger(cmd)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			listener := hotkey.NewListener(cfg.Hotkey.Keys, log)
			log.Info().Strs("keys", cfg.Hotkey.Keys).Msg("Listening for record key, press Ctrl+C to exit")

			go func() {
				<-ctx.Done()
				log.Info().Msg("Shutting down")
				listener.Stop()
			}()

			go func() {
				for ev := range listener.Events() {
					switch ev.Type {
					case hotkey.EventDown:
						log.Info().Stringer("event", ev.Type).Msg(">>> recording")
					case hotkey.EventUp:
						log.Info().Stringer("event", ev.Type).Msg("<<< stopped")
					}
				}
			}()

			// Blocks until stopped
			listener.Start()
			return nil
		},
	}
}
