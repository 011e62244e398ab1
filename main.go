package main

import (
	"fmt"
	"os"

	"hexpane/internal/save"
	"hexpane/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if os.Getenv("HEXPANE_DEBUG") != "" {
		f, err := tea.LogToFile("hexpane.log", "debug")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	path := ""
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	model, err := ui.NewModel(path, save.Disk{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
