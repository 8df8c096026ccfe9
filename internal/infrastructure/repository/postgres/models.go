package postgres

import (
	"time"

	"github.com/riskibarqy/peaks-baseball/internal/domain/game"
	"github.com/riskibarqy/peaks-baseball/internal/domain/highlight"
	"github.com/riskibarqy/peaks-baseball/internal/domain/player"
	"github.com/riskibarqy/peaks-baseball/internal/domain/playerstats"
	"github.com/riskibarqy/peaks-baseball/internal/domain/statline"
)

type playerWriteModel struct {
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	JerseyNumber int        `db:"jersey_number"`
	Position     string     `db:"position"`
	Bio          string     `db:"bio"`
	HeightInches *int       `db:"height_inches"`
	WeightLbs    *int       `db:"weight_lbs"`
	BirthDate    *time.Time `db:"birth_date"`
	Active       bool       `db:"active"`
	PhotoURL     string     `db:"photo_url"`
}

type playerTableModel struct {
	ID int64 `db:"id"`
	playerWriteModel
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func newPlayerWriteModel(p player.Player) playerWriteModel {
	return playerWriteModel{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		JerseyNumber: p.JerseyNumber,
		Position:     string(p.Position),
		Bio:          p.Bio,
		HeightInches: p.HeightInches,
		WeightLbs:    p.WeightLbs,
		BirthDate:    p.BirthDate,
		Active:       p.Active,
		PhotoURL:     p.PhotoURL,
	}
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:           m.ID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		JerseyNumber: m.JerseyNumber,
		Position:     player.Position(m.Position),
		Bio:          m.Bio,
		HeightInches: m.HeightInches,
		WeightLbs:    m.WeightLbs,
		BirthDate:    m.BirthDate,
		Active:       m.Active,
		PhotoURL:     m.PhotoURL,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

type gameWriteModel struct {
	Opponent      string    `db:"opponent"`
	GameDate      time.Time `db:"game_date"`
	Season        int       `db:"season"`
	HomeTeam      bool      `db:"home_team"`
	TeamScore     *int      `db:"team_score"`
	OpponentScore *int      `db:"opponent_score"`
	Notes         string    `db:"notes"`
	Location      string    `db:"location"`
}

type gameTableModel struct {
	ID int64 `db:"id"`
	gameWriteModel
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func newGameWriteModel(g game.Game) gameWriteModel {
	return gameWriteModel{
		Opponent:      g.Opponent,
		GameDate:      g.GameDate,
		Season:        g.Season,
		HomeTeam:      g.HomeTeam,
		TeamScore:     g.TeamScore,
		OpponentScore: g.OpponentScore,
		Notes:         g.Notes,
		Location:      g.Location,
	}
}

func (m gameTableModel) toDomain() game.Game {
	return game.Game{
		ID:            m.ID,
		Opponent:      m.Opponent,
		GameDate:      m.GameDate,
		Season:        m.Season,
		HomeTeam:      m.HomeTeam,
		TeamScore:     m.TeamScore,
		OpponentScore: m.OpponentScore,
		Notes:         m.Notes,
		Location:      m.Location,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// statLineModel maps every counting column of player_game_stats.
type statLineModel struct {
	AtBats            int     `db:"at_bats"`
	Hits              int     `db:"hits"`
	Doubles           int     `db:"doubles"`
	Triples           int     `db:"triples"`
	HomeRuns          int     `db:"home_runs"`
	RunsBattedIn      int     `db:"runs_batted_in"`
	RunsScored        int     `db:"runs_scored"`
	Walks             int     `db:"walks"`
	Strikeouts        int     `db:"strikeouts"`
	StolenBases       int     `db:"stolen_bases"`
	HitByPitch        int     `db:"hit_by_pitch"`
	TotalBases        int     `db:"total_bases"`
	InningsPitched    float64 `db:"innings_pitched"`
	EarnedRuns        int     `db:"earned_runs"`
	HitsAllowed       int     `db:"hits_allowed"`
	WalksAllowed      int     `db:"walks_allowed"`
	StrikeoutsPitched int     `db:"strikeouts_pitched"`
	Wins              int     `db:"wins"`
	Losses            int     `db:"losses"`
	Saves             int     `db:"saves"`
}

// statLineColumns lists the counting columns in statLineModel order.
var statLineColumns = []string{
	"at_bats", "hits", "doubles", "triples", "home_runs", "runs_batted_in",
	"runs_scored", "walks", "strikeouts", "stolen_bases", "hit_by_pitch",
	"total_bases", "innings_pitched", "earned_runs", "hits_allowed",
	"walks_allowed", "strikeouts_pitched", "wins", "losses", "saves",
}

func newStatLineModel(l statline.Line) statLineModel {
	return statLineModel{
		AtBats:            l.AtBats,
		Hits:              l.Hits,
		Doubles:           l.Doubles,
		Triples:           l.Triples,
		HomeRuns:          l.HomeRuns,
		RunsBattedIn:      l.RunsBattedIn,
		RunsScored:        l.RunsScored,
		Walks:             l.Walks,
		Strikeouts:        l.Strikeouts,
		StolenBases:       l.StolenBases,
		HitByPitch:        l.HitByPitch,
		TotalBases:        l.TotalBases,
		InningsPitched:    l.InningsPitched,
		EarnedRuns:        l.EarnedRuns,
		HitsAllowed:       l.HitsAllowed,
		WalksAllowed:      l.WalksAllowed,
		StrikeoutsPitched: l.StrikeoutsPitched,
		Wins:              l.Wins,
		Losses:            l.Losses,
		Saves:             l.Saves,
	}
}

func (m statLineModel) toDomain() statline.Line {
	return statline.Line{
		AtBats:            m.AtBats,
		Hits:              m.Hits,
		Doubles:           m.Doubles,
		Triples:           m.Triples,
		HomeRuns:          m.HomeRuns,
		RunsBattedIn:      m.RunsBattedIn,
		RunsScored:        m.RunsScored,
		Walks:             m.Walks,
		Strikeouts:        m.Strikeouts,
		StolenBases:       m.StolenBases,
		HitByPitch:        m.HitByPitch,
		TotalBases:        m.TotalBases,
		InningsPitched:    m.InningsPitched,
		EarnedRuns:        m.EarnedRuns,
		HitsAllowed:       m.HitsAllowed,
		WalksAllowed:      m.WalksAllowed,
		StrikeoutsPitched: m.StrikeoutsPitched,
		Wins:              m.Wins,
		Losses:            m.Losses,
		Saves:             m.Saves,
	}
}

type statWriteModel struct {
	PlayerID int64 `db:"player_id"`
	GameID   int64 `db:"game_id"`
	statLineModel
}

type statTableModel struct {
	ID       int64 `db:"id"`
	PlayerID int64 `db:"player_id"`
	GameID   int64 `db:"game_id"`
	statLineModel
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (m statTableModel) toDomain() playerstats.Stat {
	return playerstats.Stat{
		ID:        m.ID,
		PlayerID:  m.PlayerID,
		GameID:    m.GameID,
		Line:      m.statLineModel.toDomain(),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type statTotalsModel struct {
	PlayerID    int64 `db:"player_id"`
	GamesPlayed int   `db:"games_played"`
	statLineModel
}

type highlightWriteModel struct {
	PlayerID        int64      `db:"player_id"`
	Title           string     `db:"title"`
	Description     string     `db:"description"`
	VideoURL        string     `db:"video_url"`
	ThumbnailURL    string     `db:"thumbnail_url"`
	DurationSeconds *int       `db:"duration_seconds"`
	HighlightDate   *time.Time `db:"highlight_date"`
}

type highlightTableModel struct {
	ID int64 `db:"id"`
	highlightWriteModel
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func newHighlightWriteModel(h highlight.Highlight) highlightWriteModel {
	return highlightWriteModel{
		PlayerID:        h.PlayerID,
		Title:           h.Title,
		Description:     h.Description,
		VideoURL:        h.VideoURL,
		ThumbnailURL:    h.ThumbnailURL,
		DurationSeconds: h.DurationSeconds,
		HighlightDate:   h.HighlightDate,
	}
}

func (m highlightTableModel) toDomain() highlight.Highlight {
	return highlight.Highlight{
		ID:              m.ID,
		PlayerID:        m.PlayerID,
		Title:           m.Title,
		Description:     m.Description,
		VideoURL:        m.VideoURL,
		ThumbnailURL:    m.ThumbnailURL,
		DurationSeconds: m.DurationSeconds,
		HighlightDate:   m.HighlightDate,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
