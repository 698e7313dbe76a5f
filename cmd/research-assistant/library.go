package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the saved-paper library",
	Long: `Library lists, removes, and exports saved papers. Papers are saved from
search results and persist across sessions along with any saved analyses.`,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved papers",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary(buildConfig())
		if err != nil {
			return err
		}

		papers := lib.Papers()
		if len(papers) == 0 {
			fmt.Println("Library is empty.")
			return nil
		}
		for _, p := range papers {
			analyzed := ""
			if p.SavedAnalysis != nil {
				analyzed = "  [analyzed]"
			}
			fmt.Printf("%-40s  %-4d  %s%s\n", p.ID, p.Year, p.Title, analyzed)
		}
		fmt.Printf("\n%d saved papers\n", len(papers))
		return nil
	},
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove <paper-id>...",
	Short: "Remove saved papers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary(buildConfig())
		if err != nil {
			return err
		}
		for _, id := range args {
			removed, err := lib.Remove(id)
			if err != nil {
				return err
			}
			if removed {
				fmt.Printf("removed: %s\n", id)
			} else {
				fmt.Printf("not in library: %s\n", id)
			}
		}
		return nil
	},
}

var libraryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the library as YAML to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary(buildConfig())
		if err != nil {
			return err
		}
		return lib.ExportYAML(os.Stdout)
	},
}

func init() {
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryRemoveCmd)
	libraryCmd.AddCommand(libraryExportCmd)
	rootCmd.AddCommand(libraryCmd)
}
