package usecase

import (
	"context"
	"fmt"

	"github.com/vadimbarashkov/ngo-site/internal/entity"
)

const (
	DefaultEventsLimit = 10
	MaxEventsLimit     = 50
)

type calendarGateway interface {
	UpcomingEvents(ctx context.Context, limit int) ([]entity.CalendarEvent, error)
}

type EventsUseCase struct {
	gateway calendarGateway
}

func NewEventsUseCase(gateway calendarGateway) *EventsUseCase {
	return &EventsUseCase{gateway: gateway}
}

func (uc *EventsUseCase) UpcomingEvents(ctx context.Context, limit int) ([]entity.CalendarEvent, error) {
	const op = "usecase.EventsUseCase.UpcomingEvents"

	switch {
	case limit <= 0:
		limit = DefaultEventsLimit
	case limit > MaxEventsLimit:
		limit = MaxEventsLimit
	}

	events, err := uc.gateway.UpcomingEvents(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get upcoming events: %w", op, err)
	}

	return events, nil
}
