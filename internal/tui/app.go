package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/iamasit07/connect-four/internal/domain"
)

// Model is a hot-seat game in the terminal. Both players share the keyboard.
type Model struct {
	game     *domain.Game
	colors   [2]string
	cursor   int
	notice   string // last error or result line
	quitting bool
}

// NewModel starts a game with the given colors. A missing color is reported
// in the status line and the game stays not started until colors are fixed
// and r is pressed.
func NewModel(rows, columns int, player1Color, player2Color string) Model {
	m := Model{
		game:   domain.NewGame(rows, columns),
		colors: [2]string{player1Color, player2Color},
	}
	m.cursor = m.game.Columns() / 2
	m.restart()
	return m
}

func (m *Model) restart() {
	if err := m.game.Start(m.colors[0], m.colors[1]); err != nil {
		m.notice = describeError(err)
		return
	}
	m.notice = ""
	m.cursor = min(m.cursor, m.game.Columns()-1)
}

// Game exposes the underlying session, mostly for tests.
func (m Model) Game() *domain.Game {
	return m.game
}

func (m Model) Cursor() int {
	return m.cursor
}

func (m Model) Notice() string {
	return m.notice
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch s := key.String(); s {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}

	case "right", "l":
		if m.cursor < m.game.Columns()-1 {
			m.cursor++
		}

	case "enter", " ":
		m.drop(m.cursor)

	case "r":
		m.restart()

	default:
		// digits drop straight into a column, 1-based
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			column := int(s[0] - '1')
			if column < m.game.Columns() {
				m.cursor = column
			}
			m.drop(column)
		}
	}
	return m, nil
}

func (m *Model) drop(column int) {
	result, err := m.game.DropPiece(column)
	if err != nil {
		m.notice = describeError(err)
		return
	}

	switch result.Status {
	case domain.MoveWon:
		m.notice = fmt.Sprintf("%s wins! Press r for a rematch.", m.playerLabel(result.Winner))
	case domain.MoveTied:
		m.notice = "It's a tie! Press r for a rematch."
	default:
		m.notice = ""
	}
}

func describeError(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingColor):
		return "Both players need a color (--p1 / --p2)."
	case errors.Is(err, domain.ErrColumnFull):
		return "That column is full, pick another."
	case errors.Is(err, domain.ErrGameAlreadyOver):
		return "Game over. Press r to play again."
	case errors.Is(err, domain.ErrInvalidColumn):
		return "No such column."
	case errors.Is(err, domain.ErrGameNotStarted):
		return "Game has not started."
	}
	return err.Error()
}

func (m Model) playerLabel(id domain.PlayerID) string {
	p, ok := m.game.Player(id)
	if !ok {
		return fmt.Sprintf("Player %d", id)
	}
	return fmt.Sprintf("Player %d (%s)", id, p.Color)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Connect Four") + "\n\n")
	b.WriteString(boardStyle.Render(m.renderBoard()) + "\n")
	b.WriteString(m.renderStatus() + "\n")
	if m.notice != "" {
		b.WriteString(errorStyle.Render(m.notice) + "\n")
	}
	b.WriteString(helpStyle.Render("←/→ move  enter drop  1-9 drop in column  r restart  q quit"))
	return b.String()
}

func (m Model) renderBoard() string {
	var b strings.Builder

	marker := make([]string, m.game.Columns())
	for c := range marker {
		marker[c] = " "
		if c == m.cursor && !m.game.IsGameOver() {
			marker[c] = cursorStyle.Render("v")
		}
	}
	b.WriteString(strings.Join(marker, " ") + "\n")

	for r := 0; r < m.game.Rows(); r++ {
		cells := make([]string, m.game.Columns())
		for c := range cells {
			cells[c] = renderCell(m.game.CellAt(r, c))
		}
		b.WriteString(strings.Join(cells, " "))
		if r < m.game.Rows()-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderCell(p domain.PlayerID) string {
	switch p {
	case domain.Player1:
		return player1Style.Render("●")
	case domain.Player2:
		return player2Style.Render("●")
	}
	return emptyCellStyle.Render("·")
}

func (m Model) renderStatus() string {
	switch m.game.State() {
	case domain.StateNotStarted:
		return statusBarStyle.Render("Waiting for colors")
	case domain.StateFinished:
		outcome, winner := m.game.Outcome()
		if outcome == domain.OutcomeWin {
			return statusBarStyle.Render("Winner: " + m.playerLabel(winner))
		}
		return statusBarStyle.Render("Draw")
	}
	return statusBarStyle.Render(fmt.Sprintf("Turn %d: %s", m.game.MoveCount()+1, m.playerLabel(m.game.CurrentPlayerID())))
}
