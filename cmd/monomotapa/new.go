package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/eringen/monomotapa/scaffold"
)

func init() {
	newCmd.Flags().String("name", "", "site name (default derived from the directory)")
	newCmd.Flags().String("url", "http://localhost:5000", "canonical site URL")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <dir>",
	Short: "Create a new site",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		if _, err := os.Stat(dir); err == nil {
			return fmt.Errorf("directory %q already exists", dir)
		}

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = toTitle(filepath.Base(dir))
		}
		url, _ := cmd.Flags().GetString("url")

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		fsys := afero.NewBasePathFs(afero.NewOsFs(), dir)
		if err := scaffold.Write(fsys, scaffold.Data{SiteName: name, SiteURL: url}); err != nil {
			return err
		}

		files, err := scaffold.Files()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Created %s:\n", dir)
		for _, f := range files {
			fmt.Fprintf(out, "  %s\n", filepath.Join(dir, f))
		}
		fmt.Fprintf(out, "\nRun 'cd %s && monomotapa' to serve it.\n", dir)
		return nil
	},
}

// toTitle converts a hyphenated name to a title, e.g. "my-site" -> "My Site".
func toTitle(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
