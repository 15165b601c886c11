package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"pencast/internal/album"
	"pencast/internal/config"
	"pencast/internal/library"
	"pencast/internal/oid"
)

func newAlbumsCommand(ctx *commandContext) *cobra.Command {
	albumsCmd := &cobra.Command{
		Use:   "albums",
		Short: "Inspect and manage the album library",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlbumsList(ctx, cmd)
		},
	}

	albumsCmd.AddCommand(newAlbumsListCommand(ctx))
	albumsCmd.AddCommand(newAlbumsShowCommand(ctx))
	albumsCmd.AddCommand(newAlbumsDeleteCommand(ctx))
	albumsCmd.AddCommand(newAlbumsSetModeCommand(ctx))

	return albumsCmd
}

func newAlbumsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all albums",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlbumsList(ctx, cmd)
		},
	}
}

func runAlbumsList(ctx *commandContext, cmd *cobra.Command) error {
	return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
		albums, err := store.ListAlbums(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(albums) == 0 {
			fmt.Fprintln(out, "Library is empty; use `pencast import` to add an album.")
			return nil
		}

		rows := make([][]string, 0, len(albums))
		for _, entry := range albums {
			rows = append(rows, []string{
				strconv.Itoa(int(entry.ID)),
				entry.Title,
				entry.Artist,
				string(entry.Mode),
				strconv.Itoa(entry.TrackCount),
				entry.UpdatedAt.Format(time.DateOnly),
			})
		}
		headers := []string{"ID", "Title", "Artist", "Mode", "Tracks", "Updated"}
		aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft}
		fmt.Fprintln(out, renderTable(out, headers, rows, aligns))
		return nil
	})
}

func newAlbumsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one album with its track list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAlbumIDArg(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				entry, err := store.GetAlbum(cmd.Context(), id)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Album %d: %s\n", entry.ID, entry.Title)
				if entry.Artist != "" {
					fmt.Fprintf(out, "Artist: %s\n", entry.Artist)
				}
				fmt.Fprintf(out, "Mode: %s\n", entry.Mode)

				rows := make([][]string, 0, len(entry.Tracks))
				for _, track := range entry.Tracks {
					rows = append(rows, []string{
						strconv.Itoa(track.Number),
						track.Title,
						track.SourceFile,
						formatDuration(track.DurationMS),
					})
				}
				headers := []string{"#", "Title", "Source", "Length"}
				aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignRight}
				fmt.Fprintln(out, renderTable(out, headers, rows, aligns))
				return nil
			})
		},
	}
}

func newAlbumsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an album, freeing its id for reuse",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAlbumIDArg(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				if err := store.DeleteAlbum(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted album %d\n", id)
				return nil
			})
		},
	}
}

func newAlbumsSetModeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set-mode <id> <mode>",
		Short: "Change an album's stored playback mode",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAlbumIDArg(args[0])
			if err != nil {
				return err
			}
			mode, err := album.ParsePlaybackMode(args[1])
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				if err := store.SetPlaybackMode(cmd.Context(), id, mode); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Album %d mode set to %s\n", id, mode)
				return nil
			})
		},
	}
}

func parseAlbumIDArg(raw string) (oid.AlbumID, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid album id %q", raw)
	}
	return oid.NewAlbumID(n)
}

func formatDuration(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	d := time.Duration(ms) * time.Millisecond
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
