// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkline/bookscout/internal/discover"
	"github.com/mkline/bookscout/internal/library"
)

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Manage saved reading lists",
	Long: `Lists keeps books you want to come back to. Each list lives in the local
bookscout database; add books by searching and pinning the best match.`,
	RunE: runListsOverview,
}

var listsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new, empty list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		l, err := store.CreateList(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Created list %q\n", l.Name)
		return nil
	},
}

var listsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the books in a list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		l, err := store.FindList(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		books, err := store.Books(cmd.Context(), l.ID)
		if err != nil {
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(books)
		}

		if len(books) == 0 {
			fmt.Printf("List %q is empty.\n", l.Name)
			return nil
		}
		for i, b := range books {
			year := ""
			if b.YearKnown {
				year = fmt.Sprintf(" (%d)", b.Year)
			}
			fmt.Printf("%-4d %s%s — %s\n", i+1, b.Title, year, strings.Join(b.Authors, ", "))
		}
		return nil
	},
}

var listsAddCmd = &cobra.Command{
	Use:   "add <name> <query...>",
	Short: "Search the catalog and pin the best match into a list",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := library.NewStore(cfg.Library)
		if err != nil {
			return err
		}
		defer store.Close()

		l, err := store.FindList(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		client := newClient(cfg.Search)
		client.MaxRetries = 3
		books, err := discover.Search(cmd.Context(), client, discover.Query{
			Text:  strings.Join(args[1:], " "),
			Limit: 1,
		})
		if err != nil {
			return err
		}
		if len(books) == 0 {
			return fmt.Errorf("no catalog match for %q", strings.Join(args[1:], " "))
		}

		if err := store.AddBook(cmd.Context(), l.ID, books[0]); err != nil {
			return err
		}
		fmt.Printf("Added %q to %q\n", books[0].Title, l.Name)
		return nil
	},
}

var listsRemoveCmd = &cobra.Command{
	Use:   "remove <name> <book-key>",
	Short: "Remove one book from a list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		l, err := store.FindList(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return store.RemoveBook(cmd.Context(), l.ID, args[1])
	},
}

var listsClearCmd = &cobra.Command{
	Use:   "clear <name>",
	Short: "Remove every book from a list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		l, err := store.FindList(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := store.ClearList(cmd.Context(), l.ID); err != nil {
			return err
		}
		fmt.Printf("Cleared %q\n", l.Name)
		return nil
	},
}

var listsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a list and its books",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		l, err := store.FindList(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := store.DeleteList(cmd.Context(), l.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted %q\n", l.Name)
		return nil
	},
}

var listsExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Export a list to a YAML or JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		l, err := store.FindList(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		switch format {
		case "yaml", "":
			if out == "" {
				out = l.Name + ".yaml"
			}
			if err := store.ExportYAML(cmd.Context(), l.ID, l.Name, out); err != nil {
				return err
			}
		case "json":
			if out == "" {
				out = l.Name + ".json"
			}
			if err := store.ExportJSON(cmd.Context(), l.ID, l.Name, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
		fmt.Printf("Exported %q to %s\n", l.Name, out)
		return nil
	},
}

func init() {
	listsShowCmd.Flags().Bool("json", false, "output books as JSON")
	listsExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	listsExportCmd.Flags().String("out", "", "output path (default: <list>.<format>)")

	listsCmd.AddCommand(listsCreateCmd, listsShowCmd, listsAddCmd,
		listsRemoveCmd, listsClearCmd, listsDeleteCmd, listsExportCmd)
	rootCmd.AddCommand(listsCmd)
}

func runListsOverview(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	lists, err := store.Lists(cmd.Context())
	if err != nil {
		return err
	}
	if len(lists) == 0 {
		fmt.Println("No lists yet. Create one with: bookscout lists create <name>")
		return nil
	}
	for _, l := range lists {
		fmt.Printf("%-30s  %d book(s)\n", l.Name, l.BookCount)
	}
	return nil
}

// openStore opens the library database using the resolved data directory.
func openStore() (*library.Store, error) {
	cfg, err := libraryConfig()
	if err != nil {
		return nil, err
	}
	return library.NewStore(cfg)
}
