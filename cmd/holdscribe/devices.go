package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chaz8081/holdscribe/internal/audio"
)

func newDevicesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List capture devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}

			source, err := audio.NewSource(cfg.Audio.Backend)
			if err != nil {
				return err
			}
			defer source.Close()

			devices, err := source.Devices()
			if err != nil {
				return err
			}
			if len(devices) == 0 {
				return audio.ErrNoDevices
			}

			out := cmd.OutOrStdout()
			for _, d := range devices {
				marker := ""
				if d.Default {
					marker = " (default)"
				}
				fmt.Fprintf(out, "%d - %s%s\n", d.Index, d.Name, marker)
			}
			return nil
		},
	}
}
