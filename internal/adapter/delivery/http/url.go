package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/ngo-site/internal/entity"
)

type urlUseCase interface {
	ShortenURL(ctx context.Context, originalURL string) (*entity.URL, error)
	ResolveShortCode(ctx context.Context, shortCode string) (*entity.URL, error)
	GetURLStats(ctx context.Context, shortCode string) (*entity.URL, error)
}

type urlHandler struct {
	useCase       urlUseCase
	validate      *validator.Validate
	publicBaseURL string
}

func newURLHandler(useCase urlUseCase, validate *validator.Validate, publicBaseURL string) *urlHandler {
	return &urlHandler{
		useCase:       useCase,
		validate:      validate,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (h *urlHandler) shortenURL(w http.ResponseWriter, r *http.Request) {
	var req urlRequest

	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	url, err := h.useCase.ShortenURL(r.Context(), req.URL)
	if err != nil {
		respondServerError(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, toURLResponse(url, h.baseURL(r)))
}

// redirect sends the client to the original URL and counts the access.
func (h *urlHandler) redirect(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")

	url, err := h.useCase.ResolveShortCode(r.Context(), shortCode)
	if err != nil {
		if errors.Is(err, entity.ErrURLNotFound) {
			respond(w, r, http.StatusNotFound, urlNotFoundResponse)
			return
		}

		respondServerError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, url.OriginalURL, http.StatusFound)
}

func (h *urlHandler) getURLStats(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")

	url, err := h.useCase.GetURLStats(r.Context(), shortCode)
	if err != nil {
		if errors.Is(err, entity.ErrURLNotFound) {
			respond(w, r, http.StatusNotFound, urlNotFoundResponse)
			return
		}

		respondServerError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, toURLStatsResponse(url))
}

func (h *urlHandler) baseURL(r *http.Request) string {
	if h.publicBaseURL != "" {
		return h.publicBaseURL
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
