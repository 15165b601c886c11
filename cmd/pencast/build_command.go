package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pencast/internal/album"
	"pencast/internal/assembler"
	"pencast/internal/build"
	"pencast/internal/config"
	"pencast/internal/library"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var modeFlag string
	var controlsFlag int
	var skipAssemble bool

	cmd := &cobra.Command{
		Use:   "build <id>",
		Short: "Compile an album's script and assemble the pen file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAlbumIDArg(args[0])
			if err != nil {
				return err
			}

			opts := build.Options{
				MaxControls:  controlsFlag,
				SkipAssemble: skipAssemble,
			}
			if modeFlag != "" {
				mode, err := album.ParsePlaybackMode(modeFlag)
				if err != nil {
					return err
				}
				opts.Mode = mode
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				asm := assembler.NewCLI(assembler.WithBinary(cfg.Assembler.Binary))
				runner := build.NewRunner(cfg, store, asm, logger)
				result, err := runner.Build(cmd.Context(), id, opts)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Built album %d (%d tracks)\n", result.AlbumID, result.TrackCount)
				fmt.Fprintf(out, "Script:   %s\n", result.ScriptPath)
				fmt.Fprintf(out, "Code map: %s\n", result.CodeMapPath)
				if result.PenFilePath != "" {
					fmt.Fprintf(out, "Pen file: %s\n", result.PenFilePath)
				} else {
					fmt.Fprintln(out, "Assembly skipped")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", "", "Playback mode override for this build only")
	cmd.Flags().IntVar(&controlsFlag, "controls", 0, "Per-track control bank size override")
	cmd.Flags().BoolVar(&skipAssemble, "skip-assemble", false, "Write script and code map without running the assembler")
	return cmd
}
