package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chaz8081/holdscribe/internal/config"
	"github.com/chaz8081/holdscribe/internal/models"
)

func newModelCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Manage whisper models",
	}

	var dir string
	download := &cobra.Command{
		Use:   "download [name]",
		Short: "Download a ggml whisper model",
		Example: `  holdscribe model download
  holdscribe model download base`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := flags.consoleLogger(cmd)

			name := models.DefaultModel
			if len(args) == 1 {
				name = args[0]
			}

			log.Info().Str("model", name).Str("dir", dir).Msg("Downloading model")
			path, err := models.NewDownloader(dir, cmd.ErrOrStderr()).Download(cmd.Context(), name)
			if err != nil {
				log.Error().Err(err).Str("model", name).Msg("Download failed")
				return err
			}
			log.Debug().Str("path", path).Msg("Model ready")

			// The path alone goes to stdout so it can be captured by scripts.
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	download.Flags().StringVar(&dir, "dir", config.DefaultModelsDir(), "directory to store models in")

	cmd.AddCommand(download)
	return cmd
}
