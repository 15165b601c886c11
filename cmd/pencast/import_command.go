package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pencast/internal/album"
	"pencast/internal/config"
	"pencast/internal/importer"
	"pencast/internal/library"
	"pencast/internal/transcode"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var titleFlag string
	var artistFlag string
	var modeFlag string

	cmd := &cobra.Command{
		Use:   "import <path>...",
		Short: "Import audio files or directories as a new album",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := album.PlaybackMode("")
			if modeFlag != "" {
				parsed, err := album.ParsePlaybackMode(modeFlag)
				if err != nil {
					return err
				}
				mode = parsed
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				transcoder := transcode.NewCLI(
					transcode.WithBinary(cfg.Transcode.Binary),
					transcode.WithProbeBinary(cfg.Transcode.ProbeBinary),
					transcode.WithBitrate(cfg.Transcode.Bitrate),
				)
				im := importer.New(cfg, store, transcoder, logger)
				entry, err := im.Import(cmd.Context(), args, importer.Options{
					Title:  titleFlag,
					Artist: artistFlag,
					Mode:   mode,
				})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Imported album %d: %s (%d tracks)\n", entry.ID, entry.Title, len(entry.Tracks))
				fmt.Fprintf(out, "Run `pencast build %d` to produce the pen file.\n", entry.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&titleFlag, "title", "", "Album title (default: tagged album title, then directory name)")
	cmd.Flags().StringVar(&artistFlag, "artist", "", "Album artist")
	cmd.Flags().StringVar(&modeFlag, "mode", "", "Playback mode: sequential-stop or sequential-loop")
	return cmd
}
