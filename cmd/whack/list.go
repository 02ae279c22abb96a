package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-whackamole/internal/layout"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List garden layouts",
	Long:  `Shows every garden layout that can be played.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	layouts := layout.List()

	if len(layouts) == 0 {
		fmt.Println("No layouts available.")
		return
	}

	fmt.Println("Available layouts:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, l := range layouts {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Holes", "Title")
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "-----", "-----")

	for _, l := range layouts {
		mark := ""
		if l.ID == layout.DefaultID {
			mark = " (default)"
		}
		fmt.Printf("  %-*s  %-6s  %s%s\n", maxIDLen, l.ID, fmt.Sprintf("%dx%d", l.Cols, l.Rows), l.Title, mark)
	}

	fmt.Println()
	fmt.Println("Run 'whack play <id>' to play a layout.")
}
