package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/at-ishikawa/flashrev/internal/item"
	"github.com/at-ishikawa/flashrev/internal/scheduling"
)

type createItemRequest struct {
	Front      string `json:"front"`
	Back       string `json:"back"`
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
}

type reviewRequest struct {
	Outcome          string  `json:"outcome"`
	ResponseTimeMs   *int64  `json:"response_time_ms"`
	Confidence       *int    `json:"confidence"`
	SessionID        *string `json:"session_id"`
	DeviceType       *string `json:"device_type"`
	StudyEnvironment *string `json:"study_environment"`
}

type reviewResponse struct {
	Item     scheduling.Item        `json:"item"`
	Event    scheduling.ReviewEvent `json:"event"`
	Priority int                    `json:"priority"`
}

type priorityResponse struct {
	ItemID   string `json:"item_id"`
	Priority int    `json:"priority"`
}

type listResponse struct {
	Items []scheduling.Item `json:"items"`
	Count int               `json:"count"`
}

type dueResponse struct {
	Items []scheduling.DueItem `json:"items"`
	Count int                  `json:"count"`
}

type countResponse struct {
	Count int `json:"count"`
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	item, err := h.service.CreateItem(r.Context(), ownerFrom(r), scheduling.Content{
		Front:      req.Front,
		Back:       req.Back,
		Topic:      req.Topic,
		Difficulty: scheduling.Difficulty(req.Difficulty),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	offset, err := intQuery(r, "offset", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.service.ListItems(r.Context(), ownerFrom(r), item.ListFilter{
		Topic:  r.URL.Query().Get("topic"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []scheduling.Item{}
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Count: len(items)})
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), ownerFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) reviewItem(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	outcome, err := scheduling.ParseOutcome(req.Outcome)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.service.Review(r.Context(), ownerFrom(r), chi.URLParam(r, "id"), outcome, scheduling.ReviewInput{
		ResponseTimeMs:   req.ResponseTimeMs,
		Confidence:       req.Confidence,
		SessionID:        req.SessionID,
		DeviceType:       req.DeviceType,
		StudyEnvironment: req.StudyEnvironment,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviewResponse{
		Item:     result.Item,
		Event:    result.Event,
		Priority: scheduling.ComputePriority(result.Item, result.Event.OccurredAt),
	})
}

func (h *Handler) restoreItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Restore(r.Context(), ownerFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) itemPriority(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	priority, err := h.service.Priority(r.Context(), ownerFrom(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, priorityResponse{ItemID: id, Priority: priority})
}

func (h *Handler) itemEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.Events(r.Context(), ownerFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if events == nil {
		events = []scheduling.ReviewEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *Handler) dueItems(w http.ResponseWriter, r *http.Request) {
	includeOverdue, err := boolQuery(r, "include_overdue", true)
	if err != nil {
		writeError(w, r, err)
		return
	}
	maxCount, err := intQuery(r, "max", h.defaultDueLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.service.DueQueue(r.Context(), ownerFrom(r), scheduling.DueOptions{
		IncludeOverdue: includeOverdue,
		MaxCount:       maxCount,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	if items == nil {
		items = []scheduling.DueItem{}
	}
	writeJSON(w, http.StatusOK, dueResponse{Items: items, Count: len(items)})
}

func (h *Handler) dueCount(w http.ResponseWriter, r *http.Request) {
	includeOverdue, err := boolQuery(r, "include_overdue", true)
	if err != nil {
		writeError(w, r, err)
		return
	}
	count, err := h.service.CountDue(r.Context(), ownerFrom(r), includeOverdue)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: count})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	year, err := intQuery(r, "year", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	month, err := intQuery(r, "month", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if month != 0 && (year == 0 || month > 12) {
		writeError(w, r, &scheduling.ValidationError{Field: "month", Reason: "requires year and must be between 1 and 12", Err: scheduling.ErrInvalidInput})
		return
	}

	report, err := h.service.Stats(r.Context(), ownerFrom(r), year, month)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func boolQuery(r *http.Request, name string, fallback bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &scheduling.ValidationError{Field: name, Reason: "must be a boolean", Err: scheduling.ErrInvalidInput}
	}
	return v, nil
}

func intQuery(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, &scheduling.ValidationError{Field: name, Reason: "must be a non-negative integer", Err: scheduling.ErrInvalidInput}
	}
	return v, nil
}
