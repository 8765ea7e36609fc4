package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/ngo-site/internal/entity"
)

type outreachUseCase interface {
	SubmitContact(ctx context.Context, msg entity.ContactMessage) error
	Subscribe(ctx context.Context, sub entity.Subscriber) error
}

type outreachHandler struct {
	useCase  outreachUseCase
	validate *validator.Validate
}

func newOutreachHandler(useCase outreachUseCase, validate *validator.Validate) *outreachHandler {
	return &outreachHandler{
		useCase:  useCase,
		validate: validate,
	}
}

var (
	contactSentResponse = messageResponse{Status: statusSuccess, Message: "message sent"}
	subscribedResponse  = messageResponse{Status: statusSuccess, Message: "subscribed"}
)

func (h *outreachHandler) submitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest

	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	// Bots fill the hidden field. Pretend success so they do not retry.
	if req.Botcheck != "" {
		httplog.LogEntrySetField(r.Context(), "honeypot", slog.BoolValue(true))
		respond(w, r, http.StatusOK, contactSentResponse)
		return
	}

	err := h.useCase.SubmitContact(r.Context(), entity.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		if errors.Is(err, entity.ErrUpstream) {
			respondUpstreamError(w, r, err)
			return
		}

		respondServerError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, contactSentResponse)
}

func (h *outreachHandler) subscribe(w http.ResponseWriter, r *http.Request) {
	var req newsletterRequest

	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	err := h.useCase.Subscribe(r.Context(), entity.Subscriber{
		Email:     req.Email,
		FirstName: req.FirstName,
	})
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrAlreadySubscribed):
			respond(w, r, http.StatusConflict, alreadySubscribedResponse)
		case errors.Is(err, entity.ErrUpstream):
			respondUpstreamError(w, r, err)
		default:
			respondServerError(w, r, err)
		}
		return
	}

	respond(w, r, http.StatusCreated, subscribedResponse)
}
