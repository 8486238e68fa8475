package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/monomotapa/books"
	"github.com/eringen/monomotapa/log"
)

func init() {
	booksImportCmd.Flags().String("extra", "", "directory of hand-written markdown appended to matching pages")
	booksCmd.AddCommand(booksImportCmd)
	rootCmd.AddCommand(booksCmd)
}

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Manage book pages",
}

var booksImportCmd = &cobra.Command{
	Use:   "import <export.json> <dir>",
	Short: "Write a markdown page for every book in a LibraryThing export",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer func() {
			_ = log.L().Sync()
		}()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		export, err := books.Load(f)
		if err != nil {
			return err
		}

		extra, _ := cmd.Flags().GetString("extra")
		paths, err := books.NewWriter(args[1], extra).WriteAll(books.Convert(export))
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d books to %s\n", len(paths), args[1])
		return nil
	},
}
