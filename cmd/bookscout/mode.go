// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkline/bookscout/internal/library"
)

var modeCmd = &cobra.Command{
	Use:   "mode [casual|academic]",
	Short: "Show or set the discovery mode",
	Long: `Mode switches the search defaults. Casual browsing shows everything the
catalog returns; academic mode defaults to full-text-only results sorted
newest-first. The choice persists in the local database.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if len(args) == 0 {
			v, err := store.Pref(cmd.Context(), library.PrefMode, string(library.ModeCasual))
			if err != nil {
				return err
			}
			fmt.Println(v)
			return nil
		}

		mode, err := library.ParseMode(args[0])
		if err != nil {
			return err
		}
		if err := store.SetPref(cmd.Context(), library.PrefMode, string(mode)); err != nil {
			return err
		}
		fmt.Printf("Mode set to %s\n", mode)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modeCmd)
}
