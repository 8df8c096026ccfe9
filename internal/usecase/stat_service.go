package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/peaks-baseball/internal/domain/game"
	"github.com/riskibarqy/peaks-baseball/internal/domain/player"
	"github.com/riskibarqy/peaks-baseball/internal/domain/playerstats"
	"github.com/riskibarqy/peaks-baseball/internal/domain/statline"
	"github.com/riskibarqy/peaks-baseball/internal/platform/logging"
)

const (
	seasonLeadersLimit   = 10
	defaultBatchWorkers  = 4
	maxBatchLinesPerGame = 60
)

// StatEntry is a stat line joined with its player and game.
type StatEntry struct {
	Stat    playerstats.Stat
	Player  player.Player
	Game    game.Game
	Derived statline.Derived
}

// PlayerTotals is a player's aggregate line with its derived rates.
type PlayerTotals struct {
	Player      player.Player
	GamesPlayed int
	Line        statline.Line
	Derived     statline.Derived
}

type StatFilter struct {
	PlayerID int64
	GameID   int64
	Season   int
}

type CreateStatInput struct {
	PlayerID int64
	GameID   int64
	Line     statline.Optional
}

type UpdateStatInput struct {
	PlayerID *int64
	GameID   *int64
	Line     statline.Optional
}

// BoxScore lists a game's lines in jersey order with a team total.
type BoxScore struct {
	Game    game.Game
	Entries []StatEntry
	Totals  statline.Line
	Derived statline.Derived
}

type SeasonStats struct {
	Season          int
	Players         []PlayerTotals
	BattingLeaders  []PlayerTotals
	PitchingLeaders []PlayerTotals
}

type StatService struct {
	statRepo   playerstats.Repository
	playerRepo player.Repository
	gameRepo   game.Repository
	workers    int
	logger     *logging.Logger
	now        func() time.Time
}

func NewStatService(
	statRepo playerstats.Repository,
	playerRepo player.Repository,
	gameRepo game.Repository,
	batchWorkers int,
	logger *logging.Logger,
) *StatService {
	if logger == nil {
		logger = logging.Default()
	}
	if batchWorkers < 1 {
		batchWorkers = defaultBatchWorkers
	}

	return &StatService{
		statRepo:   statRepo,
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		workers:    batchWorkers,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *StatService) List(ctx context.Context, filter StatFilter) ([]StatEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatService.List")
	defer span.End()

	if filter.PlayerID < 0 || filter.GameID < 0 || filter.Season < 0 {
		return nil, fmt.Errorf("%w: filters must be positive", ErrInvalidInput)
	}
	return s.listEntries(ctx, playerstats.Filter{
		PlayerID: filter.PlayerID,
		GameID:   filter.GameID,
		Season:   filter.Season,
	})
}

func (s *StatService) Get(ctx context.Context, id int64) (StatEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatService.Get")
	defer span.End()

	item, err := s.mustGet(ctx, id)
	if err != nil {
		return StatEntry{}, err
	}
	return s.hydrateOne(ctx, item)
}

// Create stores a new line. Absent counting fields become zero and total
// bases is computed before the write.
func (s *StatService) Create(ctx context.Context, input CreateStatInput) (StatEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatService.Create")
	defer span.End()

	item := playerstats.Stat{
		PlayerID: input.PlayerID,
		GameID:   input.GameID,
		Line:     input.Line.Normalize(),
	}
	return s.save(ctx, item, true)
}

func (s *StatService) Update(ctx context.Context, id int64, input UpdateStatInput) (StatEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatService.Update")
	defer span.End()

	current, err := s.mustGet(ctx, id)
	if err != nil {
		return StatEntry{}, err
	}

	item := current
	if input.PlayerID != nil {
		item.PlayerID = *input.PlayerID
	}
	if input.GameID != nil {
		item.GameID = *input.GameID
	}
	item.Line = input.Line.ApplyTo(current.Line)

	return s.save(ctx, item, false)
}

func (s *StatService) Delete(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatService.Delete")
	defer span.End()

	if id <= 0 {
		return fmt.Errorf("%w: stat id is required", ErrInvalidInput)
	}
	deleted, err := s.statRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete stat: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: stat=%d", ErrNotFound, id)
	}
	return nil
}

// GameLog lists every line of a player, newest game first.
func (s *StatService) GameLog(ctx context.Context, playerID int64) ([]StatEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatService.GameLog")
	defer span.End()

	if _, err := s.mustGetPlayer(ctx, playerID); err != nil {
		return nil, err
	}
	return s.listEntries(ctx, playerstats.Filter{PlayerID: playerID})
}

func (s *StatService) GameBoxScore(ctx context.Context, gameID int64) (BoxScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatService.GameBoxScore")
	defer span.End()

	g, err := s.mustGetGame(ctx, gameID)
	if err != nil {
		return BoxScore{}, err
	}

	entries, err := s.listEntries(ctx, playerstats.Filter{GameID: gameID})
	if err != nil {
		return BoxScore{}, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Player.JerseyNumber < entries[j].Player.JerseyNumber
	})

	lines := make([]statline.Line, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Stat.Line)
	}
	totals := statline.Sum(lines...)

	return BoxScore{
		Game:    g,
		Entries: entries,
		Totals:  totals,
		Derived: totals.Derive(),
	}, nil
}

// PlayerSeasonStats aggregates a player's lines. Season 0 covers every season.
func (s *StatService) PlayerSeasonStats(ctx context.Context, playerID int64, season int) (PlayerTotals, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatService.PlayerSeasonStats")
	defer span.End()

	if season < 0 {
		return PlayerTotals{}, fmt.Errorf("%w: season must be positive", ErrInvalidInput)
	}
	item, err := s.mustGetPlayer(ctx, playerID)
	if err != nil {
		return PlayerTotals{}, err
	}
	return s.playerTotals(ctx, item, season)
}

// RosterStats returns a totals row for every active player in jersey order,
// including players without any line.
func (s *StatService) RosterStats(ctx context.Context, season int) ([]PlayerTotals, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatService.RosterStats")
	defer span.End()

	if season < 0 {
		return nil, fmt.Errorf("%w: season must be positive", ErrInvalidInput)
	}

	roster, err := s.playerRepo.List(ctx, player.Filter{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("list active players: %w", err)
	}
	if len(roster) == 0 {
		return []PlayerTotals{}, nil
	}

	ids := make([]int64, 0, len(roster))
	for _, p := range roster {
		ids = append(ids, p.ID)
	}
	totals, err := s.statRepo.ListTotals(ctx, playerstats.TotalsFilter{Season: season, PlayerIDs: ids})
	if err != nil {
		return nil, fmt.Errorf("list roster totals: %w", err)
	}
	byPlayer := make(map[int64]playerstats.Totals, len(totals))
	for _, t := range totals {
		byPlayer[t.PlayerID] = t
	}

	out := make([]PlayerTotals, 0, len(roster))
	for _, p := range roster {
		out = append(out, newPlayerTotals(p, byPlayer[p.ID]))
	}
	sortByJersey(out)
	return out, nil
}

// SeasonStats builds the season table and leaderboards. Season 0 means the
// current year.
func (s *StatService) SeasonStats(ctx context.Context, season int) (SeasonStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatService.SeasonStats")
	defer span.End()

	if season < 0 {
		return SeasonStats{}, fmt.Errorf("%w: season must be positive", ErrInvalidInput)
	}
	if season == 0 {
		season = s.now().Year()
	}

	totals, err := s.statRepo.ListTotals(ctx, playerstats.TotalsFilter{Season: season})
	if err != nil {
		return SeasonStats{}, fmt.Errorf("list season totals: %w", err)
	}

	rows, err := s.attachPlayers(ctx, totals)
	if err != nil {
		return SeasonStats{}, err
	}
	rows = activeOnly(rows)
	sortByJersey(rows)

	return SeasonStats{
		Season:          season,
		Players:         rows,
		BattingLeaders:  battingLeaders(rows, seasonLeadersLimit),
		PitchingLeaders: pitchingLeaders(rows, seasonLeadersLimit),
	}, nil
}

func (s *StatService) save(ctx context.Context, item playerstats.Stat, create bool) (StatEntry, error) {
	if err := item.Validate(); err != nil {
		return StatEntry{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	p, err := s.mustGetPlayer(ctx, item.PlayerID)
	if err != nil {
		return StatEntry{}, err
	}
	g, err := s.mustGetGame(ctx, item.GameID)
	if err != nil {
		return StatEntry{}, err
	}

	var saved playerstats.Stat
	if create {
		saved, err = s.statRepo.Create(ctx, item)
	} else {
		saved, err = s.statRepo.Update(ctx, item)
	}
	if err != nil {
		if errors.Is(err, playerstats.ErrDuplicateLine) {
			return StatEntry{}, fmt.Errorf("%w: player=%d already has stats for game=%d", ErrConflict, item.PlayerID, item.GameID)
		}
		if errors.Is(err, playerstats.ErrValueOutOfRange) {
			return StatEntry{}, fmt.Errorf("%w: stat value out of range", ErrInvalidInput)
		}
		return StatEntry{}, fmt.Errorf("save stat: %w", err)
	}

	return newStatEntry(saved, p, g), nil
}

func (s *StatService) playerTotals(ctx context.Context, p player.Player, season int) (PlayerTotals, error) {
	totals, err := s.statRepo.ListTotals(ctx, playerstats.TotalsFilter{Season: season, PlayerIDs: []int64{p.ID}})
	if err != nil {
		return PlayerTotals{}, fmt.Errorf("list player totals: %w", err)
	}

	var row playerstats.Totals
	for _, t := range totals {
		if t.PlayerID == p.ID {
			row = t
			break
		}
	}
	return newPlayerTotals(p, row), nil
}

func (s *StatService) attachPlayers(ctx context.Context, totals []playerstats.Totals) ([]PlayerTotals, error) {
	ids := make([]int64, 0, len(totals))
	for _, t := range totals {
		ids = append(ids, t.PlayerID)
	}
	players, err := s.playersByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]PlayerTotals, 0, len(totals))
	for _, t := range totals {
		p, ok := players[t.PlayerID]
		if !ok {
			continue
		}
		out = append(out, newPlayerTotals(p, t))
	}
	return out, nil
}

func (s *StatService) listEntries(ctx context.Context, filter playerstats.Filter) ([]StatEntry, error) {
	items, err := s.statRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list stats: %w", err)
	}
	return s.hydrate(ctx, items)
}

func (s *StatService) hydrateOne(ctx context.Context, item playerstats.Stat) (StatEntry, error) {
	out, err := s.hydrate(ctx, []playerstats.Stat{item})
	if err != nil {
		return StatEntry{}, err
	}
	if len(out) == 0 {
		return StatEntry{}, fmt.Errorf("%w: stat=%d has no player or game", ErrNotFound, item.ID)
	}
	return out[0], nil
}

func (s *StatService) hydrate(ctx context.Context, items []playerstats.Stat) ([]StatEntry, error) {
	if len(items) == 0 {
		return []StatEntry{}, nil
	}

	playerIDs := make([]int64, 0, len(items))
	gameIDs := make([]int64, 0, len(items))
	for _, item := range items {
		playerIDs = append(playerIDs, item.PlayerID)
		gameIDs = append(gameIDs, item.GameID)
	}

	players, err := s.playersByID(ctx, playerIDs)
	if err != nil {
		return nil, err
	}
	games, err := s.gameRepo.GetByIDs(ctx, uniqueIDs(gameIDs))
	if err != nil {
		return nil, fmt.Errorf("get games by ids: %w", err)
	}
	gameByID := make(map[int64]game.Game, len(games))
	for _, g := range games {
		gameByID[g.ID] = g
	}

	out := make([]StatEntry, 0, len(items))
	for _, item := range items {
		p, okPlayer := players[item.PlayerID]
		g, okGame := gameByID[item.GameID]
		if !okPlayer || !okGame {
			s.logger.WarnContext(ctx, "skip orphan stat line", "stat_id", item.ID, "player_id", item.PlayerID, "game_id", item.GameID)
			continue
		}
		out = append(out, newStatEntry(item, p, g))
	}
	return out, nil
}

func (s *StatService) playersByID(ctx context.Context, ids []int64) (map[int64]player.Player, error) {
	out := make(map[int64]player.Player, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	players, err := s.playerRepo.GetByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}
	for _, p := range players {
		out[p.ID] = p
	}
	return out, nil
}

func (s *StatService) mustGet(ctx context.Context, id int64) (playerstats.Stat, error) {
	if id <= 0 {
		return playerstats.Stat{}, fmt.Errorf("%w: stat id is required", ErrInvalidInput)
	}
	item, exists, err := s.statRepo.GetByID(ctx, id)
	if err != nil {
		return playerstats.Stat{}, fmt.Errorf("get stat: %w", err)
	}
	if !exists {
		return playerstats.Stat{}, fmt.Errorf("%w: stat=%d", ErrNotFound, id)
	}
	return item, nil
}

func (s *StatService) mustGetPlayer(ctx context.Context, id int64) (player.Player, error) {
	if id <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	item, exists, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, id)
	}
	return item, nil
}

func (s *StatService) mustGetGame(ctx context.Context, id int64) (game.Game, error) {
	if id <= 0 {
		return game.Game{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	item, exists, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		return game.Game{}, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return game.Game{}, fmt.Errorf("%w: game=%d", ErrNotFound, id)
	}
	return item, nil
}

func newStatEntry(item playerstats.Stat, p player.Player, g game.Game) StatEntry {
	return StatEntry{
		Stat:    item,
		Player:  p,
		Game:    g,
		Derived: item.Line.Derive(),
	}
}

func newPlayerTotals(p player.Player, t playerstats.Totals) PlayerTotals {
	return PlayerTotals{
		Player:      p,
		GamesPlayed: t.GamesPlayed,
		Line:        t.Line,
		Derived:     t.Line.Derive(),
	}
}

// activeOnly drops deactivated players from season tables and leaderboards.
func activeOnly(rows []PlayerTotals) []PlayerTotals {
	out := rows[:0]
	for _, row := range rows {
		if row.Player.Active {
			out = append(out, row)
		}
	}
	return out
}

// battingLeaders ranks players with at least one at bat by hits.
func battingLeaders(rows []PlayerTotals, limit int) []PlayerTotals {
	out := make([]PlayerTotals, 0, len(rows))
	for _, row := range rows {
		if row.Line.AtBats > 0 {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Line.Hits != out[j].Line.Hits {
			return out[i].Line.Hits > out[j].Line.Hits
		}
		return out[i].Player.JerseyNumber < out[j].Player.JerseyNumber
	})
	return truncate(out, limit)
}

// pitchingLeaders ranks players with recorded innings by strikeouts.
func pitchingLeaders(rows []PlayerTotals, limit int) []PlayerTotals {
	out := make([]PlayerTotals, 0, len(rows))
	for _, row := range rows {
		if row.Line.InningsPitched > 0 {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Line.StrikeoutsPitched != out[j].Line.StrikeoutsPitched {
			return out[i].Line.StrikeoutsPitched > out[j].Line.StrikeoutsPitched
		}
		return out[i].Player.JerseyNumber < out[j].Player.JerseyNumber
	})
	return truncate(out, limit)
}

func truncate(rows []PlayerTotals, limit int) []PlayerTotals {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

func sortByJersey(rows []PlayerTotals) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Player.JerseyNumber < rows[j].Player.JerseyNumber
	})
}

func statFilterFor(playerID int64, season int) playerstats.Filter {
	return playerstats.Filter{PlayerID: playerID, Season: season}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
