package memory

import (
	"sync"
	"time"

	"github.com/riskibarqy/peaks-baseball/internal/domain/game"
	"github.com/riskibarqy/peaks-baseball/internal/domain/highlight"
	"github.com/riskibarqy/peaks-baseball/internal/domain/player"
	"github.com/riskibarqy/peaks-baseball/internal/domain/playerstats"
)

// Database holds every table behind one lock so repositories can join and
// cascade the way the SQL schema does.
type Database struct {
	mu         sync.RWMutex
	players    map[int64]player.Player
	games      map[int64]game.Game
	stats      map[int64]playerstats.Stat
	highlights map[int64]highlight.Highlight

	playerSeq    int64
	gameSeq      int64
	statSeq      int64
	highlightSeq int64

	now func() time.Time
}

func NewDatabase() *Database {
	return &Database{
		players:    make(map[int64]player.Player),
		games:      make(map[int64]game.Game),
		stats:      make(map[int64]playerstats.Stat),
		highlights: make(map[int64]highlight.Highlight),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func clonePlayer(p player.Player) player.Player {
	p.HeightInches = cloneInt(p.HeightInches)
	p.WeightLbs = cloneInt(p.WeightLbs)
	p.BirthDate = cloneTime(p.BirthDate)
	return p
}

func cloneGame(g game.Game) game.Game {
	g.TeamScore = cloneInt(g.TeamScore)
	g.OpponentScore = cloneInt(g.OpponentScore)
	return g
}

func cloneHighlight(h highlight.Highlight) highlight.Highlight {
	h.DurationSeconds = cloneInt(h.DurationSeconds)
	h.HighlightDate = cloneTime(h.HighlightDate)
	return h
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
