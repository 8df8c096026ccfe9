package memory

import (
	"time"

	"github.com/riskibarqy/peaks-baseball/internal/domain/game"
	"github.com/riskibarqy/peaks-baseball/internal/domain/highlight"
	"github.com/riskibarqy/peaks-baseball/internal/domain/player"
	"github.com/riskibarqy/peaks-baseball/internal/domain/playerstats"
	"github.com/riskibarqy/peaks-baseball/internal/domain/statline"
)

// SeedPlayers returns a demo roster. IDs follow slice order starting at 1.
func SeedPlayers() []player.Player {
	return []player.Player{
		{FirstName: "Marcus", LastName: "Reyes", JerseyNumber: 2, Position: player.PositionShortstop, Active: true},
		{FirstName: "Dylan", LastName: "Okafor", JerseyNumber: 7, Position: player.PositionCenterField, Active: true},
		{FirstName: "Tyler", LastName: "Brandt", JerseyNumber: 12, Position: player.PositionCatcher, Active: true},
		{FirstName: "Jonah", LastName: "Whitfield", JerseyNumber: 18, Position: player.PositionPitcher, Active: true},
		{FirstName: "Eli", LastName: "Navarro", JerseyNumber: 21, Position: player.PositionPitcher, Active: true},
		{FirstName: "Caleb", LastName: "Moore", JerseyNumber: 24, Position: player.PositionFirstBase, Active: true},
		{FirstName: "Sam", LastName: "Ito", JerseyNumber: 33, Position: player.PositionLeftField, Active: false},
	}
}

// SeedGames returns two played games and one upcoming game for a season.
func SeedGames(season int) []game.Game {
	day := func(month time.Month, d int) time.Time {
		return time.Date(season, month, d, 0, 0, 0, 0, time.UTC)
	}
	score := func(v int) *int { return &v }

	return []game.Game{
		{Opponent: "Boulder Bison", GameDate: day(time.April, 5), Season: season, HomeTeam: true, TeamScore: score(6), OpponentScore: score(3), Location: "Peaks Field"},
		{Opponent: "Pueblo Miners", GameDate: day(time.April, 12), Season: season, HomeTeam: false, TeamScore: score(2), OpponentScore: score(4), Location: "Miners Park"},
		{Opponent: "Greeley Hawks", GameDate: day(time.April, 19), Season: season, HomeTeam: true, Location: "Peaks Field"},
	}
}

// SeedLine is a demo stat line keyed by 1-based positions in SeedPlayers
// and SeedGames.
type SeedLine struct {
	PlayerIndex int
	GameIndex   int
	Line        statline.Line
}

func SeedStatLines() []SeedLine {
	n := func(v int) *int { return &v }
	ip := func(v float64) *float64 { return &v }
	lines := []struct {
		player, game int
		line         statline.Optional
	}{
		{1, 1, statline.Optional{AtBats: n(4), Hits: n(2), Doubles: n(1), RunsScored: n(1), Walks: n(1)}},
		{2, 1, statline.Optional{AtBats: n(4), Hits: n(1), HomeRuns: n(1), RunsBattedIn: n(3), RunsScored: n(1)}},
		{3, 1, statline.Optional{AtBats: n(3), Hits: n(1), Strikeouts: n(1), HitByPitch: n(1)}},
		{4, 1, statline.Optional{InningsPitched: ip(6), EarnedRuns: n(2), HitsAllowed: n(5), WalksAllowed: n(1), StrikeoutsPitched: n(8), Wins: n(1)}},
		{5, 1, statline.Optional{InningsPitched: ip(3), EarnedRuns: n(1), HitsAllowed: n(2), StrikeoutsPitched: n(4), Saves: n(1)}},
		{1, 2, statline.Optional{AtBats: n(4), Hits: n(1), StolenBases: n(1), Strikeouts: n(1)}},
		{2, 2, statline.Optional{AtBats: n(4), Hits: n(2), Triples: n(1), RunsBattedIn: n(1)}},
		{6, 2, statline.Optional{AtBats: n(3), Hits: n(0), Walks: n(1), Strikeouts: n(2)}},
		{5, 2, statline.Optional{InningsPitched: ip(5.1), EarnedRuns: n(4), HitsAllowed: n(7), WalksAllowed: n(3), StrikeoutsPitched: n(6), Losses: n(1)}},
	}

	out := make([]SeedLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, SeedLine{PlayerIndex: l.player, GameIndex: l.game, Line: l.line.Normalize()})
	}
	return out
}

// SeedHighlights returns demo clips; PlayerID holds a 1-based SeedPlayers
// position.
func SeedHighlights() []highlight.Highlight {
	return []highlight.Highlight{
		{PlayerID: 2, Title: "Three-run homer on opening day", VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{PlayerID: 4, Title: "Eight strikeouts against Boulder", VideoURL: "https://youtu.be/9bZkp7q19f0"},
	}
}

// Seed loads the demo roster, schedule, stat lines and highlights into an
// empty database.
func Seed(db *Database, season int) {
	db.mu.Lock()
	defer db.mu.Unlock()

	now := db.now()
	playerIDs := make([]int64, 0)
	for _, p := range SeedPlayers() {
		db.playerSeq++
		p.ID = db.playerSeq
		p.CreatedAt, p.UpdatedAt = now, now
		db.players[p.ID] = p
		playerIDs = append(playerIDs, p.ID)
	}
	gameIDs := make([]int64, 0)
	for _, g := range SeedGames(season) {
		db.gameSeq++
		g.ID = db.gameSeq
		g.CreatedAt, g.UpdatedAt = now, now
		db.games[g.ID] = g
		gameIDs = append(gameIDs, g.ID)
	}

	for _, l := range SeedStatLines() {
		db.statSeq++
		db.stats[db.statSeq] = playerstats.Stat{
			ID:        db.statSeq,
			PlayerID:  playerIDs[l.PlayerIndex-1],
			GameID:    gameIDs[l.GameIndex-1],
			Line:      l.Line,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	for _, h := range SeedHighlights() {
		db.highlightSeq++
		h.ID = db.highlightSeq
		h.PlayerID = playerIDs[h.PlayerID-1]
		h.CreatedAt, h.UpdatedAt = now, now
		db.highlights[h.ID] = h
	}
}
