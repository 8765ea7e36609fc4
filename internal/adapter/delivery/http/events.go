package http

import (
	"context"
	"net/http"

	"github.com/vadimbarashkov/ngo-site/internal/entity"
)

type eventsUseCase interface {
	UpcomingEvents(ctx context.Context, limit int) ([]entity.CalendarEvent, error)
}

type eventsHandler struct {
	useCase eventsUseCase
}

func newEventsHandler(useCase eventsUseCase) *eventsHandler {
	return &eventsHandler{useCase: useCase}
}

func (h *eventsHandler) listEvents(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		respond(w, r, http.StatusBadRequest, queryErrorResponse("limit"))
		return
	}

	events, err := h.useCase.UpcomingEvents(r.Context(), limit)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, toEventsResponse(events))
}
