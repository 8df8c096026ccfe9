package game

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Result string

const (
	ResultWin  Result = "W"
	ResultLoss Result = "L"
	ResultTie  Result = "T"
)

const (
	formattedDateLayout = "January 02, 2006"
	shortDateLayout     = "01/02/06"
)

// Game is one scheduled or played game. Scores stay nil until entered.
type Game struct {
	ID            int64
	Opponent      string
	GameDate      time.Time
	Season        int
	HomeTeam      bool
	TeamScore     *int
	OpponentScore *int
	Notes         string
	Location      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Result compares the scores, counting a missing score as zero.
func (g Game) Result() Result {
	team, opp := scoreOrZero(g.TeamScore), scoreOrZero(g.OpponentScore)
	switch {
	case team > opp:
		return ResultWin
	case team < opp:
		return ResultLoss
	default:
		return ResultTie
	}
}

// ScoreDisplay lists the home side first.
func (g Game) ScoreDisplay() string {
	if g.HomeTeam {
		return scoreText(g.TeamScore) + " - " + scoreText(g.OpponentScore)
	}
	return scoreText(g.OpponentScore) + " - " + scoreText(g.TeamScore)
}

func (g Game) FormattedDate() string {
	return g.GameDate.Format(formattedDateLayout)
}

func (g Game) ShortDate() string {
	return g.GameDate.Format(shortDateLayout)
}

func (g Game) Validate() error {
	if strings.TrimSpace(g.Opponent) == "" {
		return fmt.Errorf("opponent is required")
	}
	if g.GameDate.IsZero() {
		return fmt.Errorf("game date is required")
	}
	if g.Season <= 0 {
		return fmt.Errorf("season must be greater than zero")
	}
	if g.TeamScore != nil && *g.TeamScore < 0 {
		return fmt.Errorf("team score must be >= 0")
	}
	if g.OpponentScore != nil && *g.OpponentScore < 0 {
		return fmt.Errorf("opponent score must be >= 0")
	}

	return nil
}

func scoreOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func scoreText(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
