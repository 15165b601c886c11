package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pencast/internal/config"
	"pencast/internal/library"
)

func newCodesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List allocated action codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				codes, err := store.ActionCodes(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(codes) == 0 {
					fmt.Fprintln(out, "No action codes allocated yet; they are assigned on first build.")
					return nil
				}

				rows := make([][]string, 0, len(codes))
				for _, ac := range codes {
					rows = append(rows, []string{strconv.Itoa(ac.Code), ac.Name})
				}
				headers := []string{"Code", "Action"}
				aligns := []columnAlignment{alignRight, alignLeft}
				fmt.Fprintln(out, renderTable(out, headers, rows, aligns))
				return nil
			})
		},
	}
}
