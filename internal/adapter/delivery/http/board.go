package http

import (
	"context"
	"net/http"

	"github.com/vadimbarashkov/ngo-site/internal/entity"
)

type boardUseCase interface {
	GetBoard(ctx context.Context) (*entity.ProjectBoard, error)
}

type boardHandler struct {
	useCase boardUseCase
}

func newBoardHandler(useCase boardUseCase) *boardHandler {
	return &boardHandler{useCase: useCase}
}

func (h *boardHandler) getBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.useCase.GetBoard(r.Context())
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, toBoardResponse(board))
}
