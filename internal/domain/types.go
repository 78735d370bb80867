package domain

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Other returns the opponent of p. Empty has no opponent.
func (p PlayerID) Other() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

const (
	DefaultRows    = 6
	DefaultColumns = 7
	ToWin          = 4
)

// State is the lifecycle of a game.
type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateFinished   State = "finished"
)

// Outcome is only meaningful once a game is finished.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWin  Outcome = "win"
	OutcomeTie  Outcome = "tie"
)

// MoveStatus describes what a successful drop did to the game.
type MoveStatus string

const (
	MoveContinuing MoveStatus = "continuing"
	MoveWon        MoveStatus = "won"
	MoveTied       MoveStatus = "tied"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrMissingColor    Error = "both players must choose a color"
	ErrInvalidColumn   Error = "invalid column"
	ErrColumnFull      Error = "column is full"
	ErrGameAlreadyOver Error = "game is already over"
	ErrGameNotStarted  Error = "game has not started"
	ErrCellOccupied    Error = "cell is already occupied"
	ErrOutOfBounds     Error = "cell is out of bounds"
)

// Code is the stable identifier adapters send to clients.
func (e Error) Code() string {
	switch e {
	case ErrMissingColor:
		return "missing_color"
	case ErrInvalidColumn:
		return "invalid_column"
	case ErrColumnFull:
		return "column_full"
	case ErrGameAlreadyOver:
		return "game_already_over"
	case ErrGameNotStarted:
		return "game_not_started"
	case ErrCellOccupied:
		return "cell_occupied"
	case ErrOutOfBounds:
		return "out_of_bounds"
	}
	return "unknown"
}
