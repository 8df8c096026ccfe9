package playerstats

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/riskibarqy/peaks-baseball/internal/domain/statline"
)

var (
	ErrDuplicateLine   = errors.New("player already has stats for this game")
	ErrValueOutOfRange = errors.New("stat value out of range")
)

// Stat is the stat line of one player in one game. (PlayerID, GameID) is
// unique.
type Stat struct {
	ID        int64
	PlayerID  int64
	GameID    int64
	Line      statline.Line
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s Stat) Validate() error {
	if s.PlayerID <= 0 {
		return fmt.Errorf("player id is required")
	}
	if s.GameID <= 0 {
		return fmt.Errorf("game id is required")
	}
	if name, ok := firstOutOfRange(s.Line); ok {
		return fmt.Errorf("%s must be between 0 and %s", name, limitFor(name))
	}
	return nil
}

// Totals is a player's aggregate line over the games matched by a filter.
type Totals struct {
	PlayerID    int64
	GamesPlayed int
	Line        statline.Line
}

// Storage limits: counters are INTEGER columns and innings are
// NUMERIC(4,1).
const (
	MaxCounter = math.MaxInt32
	MaxInnings = 999.9
)

func limitFor(name string) string {
	if name == "innings_pitched" {
		return strconv.FormatFloat(MaxInnings, 'f', 1, 64)
	}
	return strconv.Itoa(MaxCounter)
}

func firstOutOfRange(l statline.Line) (string, bool) {
	counters := []struct {
		name  string
		value int
	}{
		{"at_bats", l.AtBats},
		{"hits", l.Hits},
		{"doubles", l.Doubles},
		{"triples", l.Triples},
		{"home_runs", l.HomeRuns},
		{"runs_batted_in", l.RunsBattedIn},
		{"runs_scored", l.RunsScored},
		{"walks", l.Walks},
		{"strikeouts", l.Strikeouts},
		{"stolen_bases", l.StolenBases},
		{"hit_by_pitch", l.HitByPitch},
		{"earned_runs", l.EarnedRuns},
		{"hits_allowed", l.HitsAllowed},
		{"walks_allowed", l.WalksAllowed},
		{"strikeouts_pitched", l.StrikeoutsPitched},
		{"wins", l.Wins},
		{"losses", l.Losses},
		{"saves", l.Saves},
		{"total_bases", l.TotalBases},
	}
	for _, c := range counters {
		if c.value < 0 || c.value > MaxCounter {
			return c.name, true
		}
	}
	if l.InningsPitched < 0 || l.InningsPitched > MaxInnings {
		return "innings_pitched", true
	}
	return "", false
}
