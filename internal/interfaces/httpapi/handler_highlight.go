package httpapi

import (
	"net/http"
	"strconv"
)

func (h *Handler) ListHighlights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListHighlights")
	defer span.End()

	playerID, err := queryInt64(r, "player_id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := queryInt64(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.highlightService.List(ctx, playerID, int(limit))
	if err != nil {
		h.logger.WarnContext(ctx, "list highlights failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(len(items)))
	writeSuccess(ctx, w, http.StatusOK, highlightsToDTO(items))
}

func (h *Handler) GetHighlight(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHighlight")
	defer span.End()

	highlightID, err := pathID(r, "highlightID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.highlightService.Get(ctx, highlightID)
	if err != nil {
		h.logger.WarnContext(ctx, "get highlight failed", "highlight_id", highlightID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, highlightToDTO(item))
}

func (h *Handler) CreateHighlight(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateHighlight")
	defer span.End()

	var req highlightRequest
	if err := h.decodeAndValidate(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.highlightService.Create(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "create highlight failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, highlightToDTO(item))
}

func (h *Handler) UpdateHighlight(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateHighlight")
	defer span.End()

	highlightID, err := pathID(r, "highlightID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req highlightRequest
	if err := h.decodeAndValidate(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.highlightService.Update(ctx, highlightID, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update highlight failed", "highlight_id", highlightID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, highlightToDTO(item))
}

func (h *Handler) DeleteHighlight(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteHighlight")
	defer span.End()

	highlightID, err := pathID(r, "highlightID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.highlightService.Delete(ctx, highlightID); err != nil {
		h.logger.WarnContext(ctx, "delete highlight failed", "highlight_id", highlightID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int64{"deleted_id": highlightID})
}
