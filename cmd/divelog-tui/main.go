package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/divelog-export/internal/ui"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: divelog-tui <database.db>")
		fmt.Fprintln(os.Stderr, "\nBrowse a Shearwater Cloud database export in the terminal.")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	p := tea.NewProgram(ui.NewModel(flag.Arg(0)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
