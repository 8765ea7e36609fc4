package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vadimbarashkov/ngo-site/internal/entity"
	"github.com/vadimbarashkov/ngo-site/internal/usecase"
)

type contentUseCase interface {
	Collections() []entity.CollectionInfo
	ListPosts(params usecase.ListPostsParams) (*entity.Page[*entity.Post], error)
	GetPost(collection, slug string) (*entity.Post, error)
	RelatedPosts(collection, slug string, limit int) ([]*entity.Post, error)
	Categories(collection string) ([]entity.TermCount, error)
	Tags(collection string) ([]entity.TermCount, error)
}

type contentHandler struct {
	useCase contentUseCase
}

func newContentHandler(useCase contentUseCase) *contentHandler {
	return &contentHandler{useCase: useCase}
}

func (h *contentHandler) listCollections(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, toCollectionsResponse(h.useCase.Collections()))
}

func (h *contentHandler) listPosts(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		respond(w, r, http.StatusBadRequest, queryErrorResponse("page"))
		return
	}

	pageSize, err := queryInt(r, "page_size")
	if err != nil {
		respond(w, r, http.StatusBadRequest, queryErrorResponse("page_size"))
		return
	}

	q := r.URL.Query()

	result, err := h.useCase.ListPosts(usecase.ListPostsParams{
		Collection: chi.URLParam(r, "collection"),
		Category:   q.Get("category"),
		Tag:        q.Get("tag"),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, toPostPageResponse(result))
}

func (h *contentHandler) getPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.useCase.GetPost(chi.URLParam(r, "collection"), chi.URLParam(r, "slug"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, toPostResponse(post))
}

func (h *contentHandler) relatedPosts(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		respond(w, r, http.StatusBadRequest, queryErrorResponse("limit"))
		return
	}

	posts, err := h.useCase.RelatedPosts(chi.URLParam(r, "collection"), chi.URLParam(r, "slug"), limit)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, relatedResponse{Items: toPostSummaries(posts)})
}

func (h *contentHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	terms, err := h.useCase.Categories(chi.URLParam(r, "collection"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, toTermsResponse(terms))
}

func (h *contentHandler) listTags(w http.ResponseWriter, r *http.Request) {
	terms, err := h.useCase.Tags(chi.URLParam(r, "collection"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, toTermsResponse(terms))
}

func (h *contentHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, entity.ErrCollectionNotFound):
		respond(w, r, http.StatusNotFound, collectionNotFoundResponse)
	case errors.Is(err, entity.ErrPostNotFound):
		respond(w, r, http.StatusNotFound, postNotFoundResponse)
	default:
		respondServerError(w, r, err)
	}
}
