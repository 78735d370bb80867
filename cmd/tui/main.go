package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/iamasit07/connect-four/internal/config"
	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/tui"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	p1 := flag.String("p1", "red", "player 1 color")
	p2 := flag.String("p2", "yellow", "player 2 color")
	rows := flag.Int("rows", config.GetEnvAsInt("BOARD_ROWS", domain.DefaultRows), "board rows")
	columns := flag.Int("columns", config.GetEnvAsInt("BOARD_COLUMNS", domain.DefaultColumns), "board columns")
	flag.Parse()

	if err := config.ValidateBoard(*rows, *columns); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	m := tui.NewModel(*rows, *columns, *p1, *p2)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
