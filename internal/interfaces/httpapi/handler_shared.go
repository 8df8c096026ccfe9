package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/peaks-baseball/internal/domain/game"
	"github.com/riskibarqy/peaks-baseball/internal/domain/highlight"
	"github.com/riskibarqy/peaks-baseball/internal/domain/player"
	"github.com/riskibarqy/peaks-baseball/internal/domain/statline"
	"github.com/riskibarqy/peaks-baseball/internal/platform/logging"
	"github.com/riskibarqy/peaks-baseball/internal/usecase"
)

const (
	dateLayout   = "2006-01-02"
	maxBodyBytes = 1 << 20
)

type Handler struct {
	playerService    *usecase.PlayerService
	gameService      *usecase.GameService
	statService      *usecase.StatService
	highlightService *usecase.HighlightService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	gameService *usecase.GameService,
	statService *usecase.StatService,
	highlightService *usecase.HighlightService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		playerService:    playerService,
		gameService:      gameService,
		statService:      statService,
		highlightService: highlightService,
		logger:           logger,
		validator:        validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeAndValidate reads a JSON body into dst, rejecting unknown fields.
func (h *Handler) decodeAndValidate(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return id, nil
}

func queryInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return v, nil
}

func querySeason(r *http.Request) (int, error) {
	v, err := queryInt64(r, "season")
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

func parseOptionalDate(field string, raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	v, err := time.Parse(dateLayout, strings.TrimSpace(*raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", usecase.ErrInvalidInput, field)
	}
	return &v, nil
}

func formatDate(v *time.Time) string {
	if v == nil || v.IsZero() {
		return ""
	}
	return v.Format(dateLayout)
}

type playerRequest struct {
	FirstName    *string `json:"first_name" validate:"omitempty,max=100"`
	LastName     *string `json:"last_name" validate:"omitempty,max=100"`
	JerseyNumber *int    `json:"jersey_number" validate:"omitempty,gte=0,lte=99"`
	Position     *string `json:"position" validate:"omitempty,max=3"`
	Bio          *string `json:"bio" validate:"omitempty,max=2000"`
	HeightInches *int    `json:"height_inches" validate:"omitempty,gt=0"`
	WeightLbs    *int    `json:"weight_lbs" validate:"omitempty,gt=0"`
	BirthDate    *string `json:"birth_date"`
	PhotoURL     *string `json:"photo_url" validate:"omitempty,url"`
	Active       *bool   `json:"active"`
}

func (req playerRequest) toInput() (usecase.PlayerInput, error) {
	birthDate, err := parseOptionalDate("birth_date", req.BirthDate)
	if err != nil {
		return usecase.PlayerInput{}, err
	}
	return usecase.PlayerInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		JerseyNumber: req.JerseyNumber,
		Position:     req.Position,
		Bio:          req.Bio,
		HeightInches: req.HeightInches,
		WeightLbs:    req.WeightLbs,
		BirthDate:    birthDate,
		PhotoURL:     req.PhotoURL,
		Active:       req.Active,
	}, nil
}

type gameRequest struct {
	Opponent      *string `json:"opponent" validate:"omitempty,max=100"`
	GameDate      *string `json:"game_date"`
	Season        *int    `json:"season" validate:"omitempty,gte=1900,lte=2200"`
	HomeTeam      *bool   `json:"home_team"`
	TeamScore     *int    `json:"team_score" validate:"omitempty,gte=0"`
	OpponentScore *int    `json:"opponent_score" validate:"omitempty,gte=0"`
	Notes         *string `json:"notes" validate:"omitempty,max=2000"`
	Location      *string `json:"location" validate:"omitempty,max=200"`
}

func (req gameRequest) toInput() (usecase.GameInput, error) {
	gameDate, err := parseOptionalDate("game_date", req.GameDate)
	if err != nil {
		return usecase.GameInput{}, err
	}
	return usecase.GameInput{
		Opponent:      req.Opponent,
		GameDate:      gameDate,
		Season:        req.Season,
		HomeTeam:      req.HomeTeam,
		TeamScore:     req.TeamScore,
		OpponentScore: req.OpponentScore,
		Notes:         req.Notes,
		Location:      req.Location,
	}, nil
}

type statLineRequest struct {
	AtBats            *int     `json:"at_bats" validate:"omitempty,gte=0,lte=2147483647"`
	Hits              *int     `json:"hits" validate:"omitempty,gte=0,lte=2147483647"`
	Doubles           *int     `json:"doubles" validate:"omitempty,gte=0,lte=2147483647"`
	Triples           *int     `json:"triples" validate:"omitempty,gte=0,lte=2147483647"`
	HomeRuns          *int     `json:"home_runs" validate:"omitempty,gte=0,lte=2147483647"`
	RunsBattedIn      *int     `json:"runs_batted_in" validate:"omitempty,gte=0,lte=2147483647"`
	RunsScored        *int     `json:"runs_scored" validate:"omitempty,gte=0,lte=2147483647"`
	Walks             *int     `json:"walks" validate:"omitempty,gte=0,lte=2147483647"`
	Strikeouts        *int     `json:"strikeouts" validate:"omitempty,gte=0,lte=2147483647"`
	StolenBases       *int     `json:"stolen_bases" validate:"omitempty,gte=0,lte=2147483647"`
	HitByPitch        *int     `json:"hit_by_pitch" validate:"omitempty,gte=0,lte=2147483647"`
	InningsPitched    *float64 `json:"innings_pitched" validate:"omitempty,gte=0,lte=999.9"`
	EarnedRuns        *int     `json:"earned_runs" validate:"omitempty,gte=0,lte=2147483647"`
	HitsAllowed       *int     `json:"hits_allowed" validate:"omitempty,gte=0,lte=2147483647"`
	WalksAllowed      *int     `json:"walks_allowed" validate:"omitempty,gte=0,lte=2147483647"`
	StrikeoutsPitched *int     `json:"strikeouts_pitched" validate:"omitempty,gte=0,lte=2147483647"`
	Wins              *int     `json:"wins" validate:"omitempty,gte=0,lte=2147483647"`
	Losses            *int     `json:"losses" validate:"omitempty,gte=0,lte=2147483647"`
	Saves             *int     `json:"saves" validate:"omitempty,gte=0,lte=2147483647"`
}

func (req statLineRequest) toOptional() statline.Optional {
	return statline.Optional{
		AtBats:            req.AtBats,
		Hits:              req.Hits,
		Doubles:           req.Doubles,
		Triples:           req.Triples,
		HomeRuns:          req.HomeRuns,
		RunsBattedIn:      req.RunsBattedIn,
		RunsScored:        req.RunsScored,
		Walks:             req.Walks,
		Strikeouts:        req.Strikeouts,
		StolenBases:       req.StolenBases,
		HitByPitch:        req.HitByPitch,
		InningsPitched:    req.InningsPitched,
		EarnedRuns:        req.EarnedRuns,
		HitsAllowed:       req.HitsAllowed,
		WalksAllowed:      req.WalksAllowed,
		StrikeoutsPitched: req.StrikeoutsPitched,
		Wins:              req.Wins,
		Losses:            req.Losses,
		Saves:             req.Saves,
	}
}

type statRequest struct {
	PlayerID *int64 `json:"player_id" validate:"omitempty,gt=0"`
	GameID   *int64 `json:"game_id" validate:"omitempty,gt=0"`
	statLineRequest
}

type batchStatRequest struct {
	Lines []batchLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type batchLineRequest struct {
	PlayerID int64 `json:"player_id" validate:"required,gt=0"`
	statLineRequest
}

type highlightRequest struct {
	PlayerID        *int64  `json:"player_id" validate:"omitempty,gt=0"`
	Title           *string `json:"title" validate:"omitempty,max=200"`
	Description     *string `json:"description" validate:"omitempty,max=2000"`
	VideoURL        *string `json:"video_url" validate:"omitempty,url"`
	ThumbnailURL    *string `json:"thumbnail_url" validate:"omitempty,url"`
	DurationSeconds *int    `json:"duration_seconds" validate:"omitempty,gte=0"`
	HighlightDate   *string `json:"highlight_date"`
}

func (req highlightRequest) toInput() (usecase.HighlightInput, error) {
	highlightDate, err := parseOptionalDate("highlight_date", req.HighlightDate)
	if err != nil {
		return usecase.HighlightInput{}, err
	}
	return usecase.HighlightInput{
		PlayerID:        req.PlayerID,
		Title:           req.Title,
		Description:     req.Description,
		VideoURL:        req.VideoURL,
		ThumbnailURL:    req.ThumbnailURL,
		DurationSeconds: req.DurationSeconds,
		HighlightDate:   highlightDate,
	}, nil
}

type playerDTO struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	FullName     string `json:"full_name"`
	DisplayName  string `json:"display_name"`
	Slug         string `json:"slug"`
	JerseyNumber int    `json:"jersey_number"`
	Position     string `json:"position"`
	Bio          string `json:"bio,omitempty"`
	HeightInches *int   `json:"height_inches,omitempty"`
	WeightLbs    *int   `json:"weight_lbs,omitempty"`
	BirthDate    string `json:"birth_date,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
	Active       bool   `json:"active"`
	CreatedAtUTC string `json:"created_at_utc"`
	UpdatedAtUTC string `json:"updated_at_utc"`
}

// playerRefDTO is the short player shape nested in stat rows.
type playerRefDTO struct {
	ID           int64  `json:"id"`
	FullName     string `json:"full_name"`
	JerseyNumber int    `json:"jersey_number"`
	Position     string `json:"position"`
}

type gameDTO struct {
	ID            int64  `json:"id"`
	Opponent      string `json:"opponent"`
	GameDate      string `json:"game_date"`
	FormattedDate string `json:"formatted_date"`
	ShortDate     string `json:"short_date"`
	Season        int    `json:"season"`
	HomeTeam      bool   `json:"home_team"`
	TeamScore     *int   `json:"team_score"`
	OpponentScore *int   `json:"opponent_score"`
	Result        string `json:"result,omitempty"`
	ScoreDisplay  string `json:"score_display,omitempty"`
	Notes         string `json:"notes,omitempty"`
	Location      string `json:"location,omitempty"`
}

type statLineDTO struct {
	AtBats             int     `json:"at_bats"`
	Hits               int     `json:"hits"`
	Doubles            int     `json:"doubles"`
	Triples            int     `json:"triples"`
	HomeRuns           int     `json:"home_runs"`
	RunsBattedIn       int     `json:"runs_batted_in"`
	RunsScored         int     `json:"runs_scored"`
	Walks              int     `json:"walks"`
	Strikeouts         int     `json:"strikeouts"`
	StolenBases        int     `json:"stolen_bases"`
	HitByPitch         int     `json:"hit_by_pitch"`
	TotalBases         int     `json:"total_bases"`
	InningsPitched     float64 `json:"innings_pitched"`
	EarnedRuns         int     `json:"earned_runs"`
	HitsAllowed        int     `json:"hits_allowed"`
	WalksAllowed       int     `json:"walks_allowed"`
	StrikeoutsPitched  int     `json:"strikeouts_pitched"`
	Wins               int     `json:"wins"`
	Losses             int     `json:"losses"`
	Saves              int     `json:"saves"`
	BattingAverage     float64 `json:"batting_average"`
	OnBasePercentage   float64 `json:"on_base_percentage"`
	SluggingPercentage float64 `json:"slugging_percentage"`
	OPS                float64 `json:"ops"`
	ERA                float64 `json:"era"`
	WHIP               float64 `json:"whip"`
}

type statEntryDTO struct {
	ID       int64        `json:"id"`
	PlayerID int64        `json:"player_id"`
	GameID   int64        `json:"game_id"`
	Player   playerRefDTO `json:"player"`
	Game     gameDTO      `json:"game"`
	Line     statLineDTO  `json:"line"`
}

type playerTotalsDTO struct {
	Player      playerRefDTO `json:"player"`
	GamesPlayed int          `json:"games_played"`
	Line        statLineDTO  `json:"line"`
}

type boxScoreDTO struct {
	Game   gameDTO        `json:"game"`
	Lines  []statEntryDTO `json:"lines"`
	Totals statLineDTO    `json:"totals"`
}

type seasonStatsDTO struct {
	Season          int               `json:"season"`
	Players         []playerTotalsDTO `json:"players"`
	BattingLeaders  []playerTotalsDTO `json:"batting_leaders"`
	PitchingLeaders []playerTotalsDTO `json:"pitching_leaders"`
}

type playerDetailDTO struct {
	Player           playerDTO        `json:"player"`
	Season           int              `json:"season"`
	SeasonSummary    *playerTotalsDTO `json:"season_summary"`
	SeasonLines      []statEntryDTO   `json:"season_lines"`
	Highlights       []highlightDTO   `json:"highlights"`
	RecentHighlights []highlightDTO   `json:"recent_highlights"`
}

type highlightDTO struct {
	ID              int64  `json:"id"`
	PlayerID        int64  `json:"player_id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	VideoURL        string `json:"video_url"`
	EmbedURL        string `json:"embed_url"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty"`
	DurationSeconds *int   `json:"duration_seconds,omitempty"`
	HighlightDate   string `json:"highlight_date,omitempty"`
	FormattedDate   string `json:"formatted_date"`
	CreatedAtUTC    string `json:"created_at_utc"`
}

type batchLineResultDTO struct {
	PlayerID int64         `json:"player_id"`
	Status   string        `json:"status"`
	Message  string        `json:"message,omitempty"`
	Entry    *statEntryDTO `json:"entry,omitempty"`
}

type batchResultDTO struct {
	GameID       int64                `json:"game_id"`
	SuccessCount int                  `json:"success_count"`
	FailedCount  int                  `json:"failed_count"`
	Lines        []batchLineResultDTO `json:"lines"`
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:           v.ID,
		FirstName:    v.FirstName,
		LastName:     v.LastName,
		FullName:     v.FullName(),
		DisplayName:  v.DisplayName(),
		Slug:         v.Slug(),
		JerseyNumber: v.JerseyNumber,
		Position:     string(v.Position),
		Bio:          v.Bio,
		HeightInches: v.HeightInches,
		WeightLbs:    v.WeightLbs,
		BirthDate:    formatDate(v.BirthDate),
		PhotoURL:     v.PhotoURL,
		Active:       v.Active,
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAtUTC: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func playersToDTO(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerToDTO(item))
	}
	return out
}

func playerToRefDTO(v player.Player) playerRefDTO {
	return playerRefDTO{
		ID:           v.ID,
		FullName:     v.FullName(),
		JerseyNumber: v.JerseyNumber,
		Position:     string(v.Position),
	}
}

func gameToDTO(v game.Game) gameDTO {
	out := gameDTO{
		ID:            v.ID,
		Opponent:      v.Opponent,
		GameDate:      v.GameDate.Format(dateLayout),
		FormattedDate: v.FormattedDate(),
		ShortDate:     v.ShortDate(),
		Season:        v.Season,
		HomeTeam:      v.HomeTeam,
		TeamScore:     v.TeamScore,
		OpponentScore: v.OpponentScore,
		Notes:         v.Notes,
		Location:      v.Location,
	}
	// Unplayed games have no result yet.
	if v.TeamScore != nil && v.OpponentScore != nil {
		out.Result = string(v.Result())
		out.ScoreDisplay = v.ScoreDisplay()
	}
	return out
}

func gamesToDTO(items []game.Game) []gameDTO {
	out := make([]gameDTO, 0, len(items))
	for _, item := range items {
		out = append(out, gameToDTO(item))
	}
	return out
}

func statLineToDTO(l statline.Line, d statline.Derived) statLineDTO {
	return statLineDTO{
		AtBats:             l.AtBats,
		Hits:               l.Hits,
		Doubles:            l.Doubles,
		Triples:            l.Triples,
		HomeRuns:           l.HomeRuns,
		RunsBattedIn:       l.RunsBattedIn,
		RunsScored:         l.RunsScored,
		Walks:              l.Walks,
		Strikeouts:         l.Strikeouts,
		StolenBases:        l.StolenBases,
		HitByPitch:         l.HitByPitch,
		TotalBases:         l.TotalBases,
		InningsPitched:     l.InningsPitched,
		EarnedRuns:         l.EarnedRuns,
		HitsAllowed:        l.HitsAllowed,
		WalksAllowed:       l.WalksAllowed,
		StrikeoutsPitched:  l.StrikeoutsPitched,
		Wins:               l.Wins,
		Losses:             l.Losses,
		Saves:              l.Saves,
		BattingAverage:     d.BattingAverage,
		OnBasePercentage:   d.OnBasePercentage,
		SluggingPercentage: d.SluggingPercentage,
		OPS:                d.OPS,
		ERA:                d.ERA,
		WHIP:               d.WHIP,
	}
}

func statEntryToDTO(v usecase.StatEntry) statEntryDTO {
	return statEntryDTO{
		ID:       v.Stat.ID,
		PlayerID: v.Stat.PlayerID,
		GameID:   v.Stat.GameID,
		Player:   playerToRefDTO(v.Player),
		Game:     gameToDTO(v.Game),
		Line:     statLineToDTO(v.Stat.Line, v.Derived),
	}
}

func statEntriesToDTO(items []usecase.StatEntry) []statEntryDTO {
	out := make([]statEntryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, statEntryToDTO(item))
	}
	return out
}

func playerTotalsToDTO(v usecase.PlayerTotals) playerTotalsDTO {
	return playerTotalsDTO{
		Player:      playerToRefDTO(v.Player),
		GamesPlayed: v.GamesPlayed,
		Line:        statLineToDTO(v.Line, v.Derived),
	}
}

func playerTotalsListToDTO(items []usecase.PlayerTotals) []playerTotalsDTO {
	out := make([]playerTotalsDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerTotalsToDTO(item))
	}
	return out
}

func boxScoreToDTO(v usecase.BoxScore) boxScoreDTO {
	return boxScoreDTO{
		Game:   gameToDTO(v.Game),
		Lines:  statEntriesToDTO(v.Entries),
		Totals: statLineToDTO(v.Totals, v.Derived),
	}
}

func seasonStatsToDTO(v usecase.SeasonStats) seasonStatsDTO {
	return seasonStatsDTO{
		Season:          v.Season,
		Players:         playerTotalsListToDTO(v.Players),
		BattingLeaders:  playerTotalsListToDTO(v.BattingLeaders),
		PitchingLeaders: playerTotalsListToDTO(v.PitchingLeaders),
	}
}

func playerDetailToDTO(v usecase.PlayerDetail) playerDetailDTO {
	out := playerDetailDTO{
		Player:           playerToDTO(v.Player),
		Season:           v.Season,
		SeasonLines:      statEntriesToDTO(v.SeasonLines),
		Highlights:       highlightsToDTO(v.Highlights),
		RecentHighlights: highlightsToDTO(v.RecentHighlights),
	}
	if v.SeasonSummary != nil {
		summary := playerTotalsToDTO(*v.SeasonSummary)
		out.SeasonSummary = &summary
	}
	return out
}

func highlightToDTO(v highlight.Highlight) highlightDTO {
	return highlightDTO{
		ID:              v.ID,
		PlayerID:        v.PlayerID,
		Title:           v.Title,
		Description:     v.Description,
		VideoURL:        v.VideoURL,
		EmbedURL:        v.EmbedURL(),
		ThumbnailURL:    v.Thumbnail(),
		DurationSeconds: v.DurationSeconds,
		HighlightDate:   formatDate(v.HighlightDate),
		FormattedDate:   v.FormattedDate(),
		CreatedAtUTC:    v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func highlightsToDTO(items []highlight.Highlight) []highlightDTO {
	out := make([]highlightDTO, 0, len(items))
	for _, item := range items {
		out = append(out, highlightToDTO(item))
	}
	return out
}

func batchResultToDTO(v usecase.BatchResult) batchResultDTO {
	lines := make([]batchLineResultDTO, 0, len(v.Lines))
	for _, line := range v.Lines {
		item := batchLineResultDTO{
			PlayerID: line.PlayerID,
			Status:   line.Status,
			Message:  line.Message,
		}
		if line.Entry != nil {
			entry := statEntryToDTO(*line.Entry)
			item.Entry = &entry
		}
		lines = append(lines, item)
	}
	return batchResultDTO{
		GameID:       v.GameID,
		SuccessCount: v.SuccessCount,
		FailedCount:  v.FailedCount,
		Lines:        lines,
	}
}
