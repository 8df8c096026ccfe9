package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/peaks-baseball/internal/usecase"
)

func (h *Handler) ListStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStats")
	defer span.End()

	filter, err := statFilterFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.statService.List(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list stats failed", "player_id", filter.PlayerID, "game_id", filter.GameID, "season", filter.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statEntriesToDTO(items))
}

func (h *Handler) GetStat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStat")
	defer span.End()

	statID, err := pathID(r, "statID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entry, err := h.statService.Get(ctx, statID)
	if err != nil {
		h.logger.WarnContext(ctx, "get stat failed", "stat_id", statID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statEntryToDTO(entry))
}

func (h *Handler) CreateStat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateStat")
	defer span.End()

	var req statRequest
	if err := h.decodeAndValidate(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.PlayerID == nil || req.GameID == nil {
		writeError(ctx, w, fmt.Errorf("%w: player_id and game_id are required", usecase.ErrInvalidInput))
		return
	}

	entry, err := h.statService.Create(ctx, usecase.CreateStatInput{
		PlayerID: *req.PlayerID,
		GameID:   *req.GameID,
		Line:     req.toOptional(),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create stat failed", "player_id", *req.PlayerID, "game_id", *req.GameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, statEntryToDTO(entry))
}

func (h *Handler) UpdateStat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateStat")
	defer span.End()

	statID, err := pathID(r, "statID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req statRequest
	if err := h.decodeAndValidate(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entry, err := h.statService.Update(ctx, statID, usecase.UpdateStatInput{
		PlayerID: req.PlayerID,
		GameID:   req.GameID,
		Line:     req.toOptional(),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update stat failed", "stat_id", statID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statEntryToDTO(entry))
}

func (h *Handler) DeleteStat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteStat")
	defer span.End()

	statID, err := pathID(r, "statID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.statService.Delete(ctx, statID); err != nil {
		h.logger.WarnContext(ctx, "delete stat failed", "stat_id", statID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int64{"deleted_id": statID})
}

func (h *Handler) GetRosterStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRosterStats")
	defer span.End()

	season, err := querySeason(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.statService.RosterStats(ctx, season)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster stats failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerTotalsListToDTO(items))
}

func (h *Handler) GetSeasonStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonStats")
	defer span.End()

	season, err := querySeason(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.statService.SeasonStats(ctx, season)
	if err != nil {
		h.logger.WarnContext(ctx, "get season stats failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonStatsToDTO(stats))
}

func statFilterFromQuery(r *http.Request) (usecase.StatFilter, error) {
	playerID, err := queryInt64(r, "player_id")
	if err != nil {
		return usecase.StatFilter{}, err
	}
	gameID, err := queryInt64(r, "game_id")
	if err != nil {
		return usecase.StatFilter{}, err
	}
	season, err := querySeason(r)
	if err != nil {
		return usecase.StatFilter{}, err
	}
	return usecase.StatFilter{PlayerID: playerID, GameID: gameID, Season: season}, nil
}
