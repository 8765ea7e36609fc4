package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vadimbarashkov/ngo-site/internal/entity"
)

func (suite *HandlersTestSuite) TestGetBoard() {
	const path = "/api/v1/projects"

	suite.Run("upstream error", func() {
		suite.boardUseCaseMock.
			On("GetBoard", mock.Anything).
			Once().
			Return(nil, fmt.Errorf("fetch: %w", entity.ErrUpstream))

		suite.e.GET(path).
			Expect().
			Status(http.StatusBadGateway).
			JSON().Object().
			HasValue("status", "error").
			HasValue("message", "upstream service unavailable")
	})

	suite.Run("success", func() {
		suite.boardUseCaseMock.
			On("GetBoard", mock.Anything).
			Once().
			Return(&entity.ProjectBoard{
				Title: "Roadmap",
				URL:   "https://github.com/orgs/acme/projects/1",
				Columns: []entity.BoardColumn{
					{Name: "Todo", Items: []entity.BoardItem{{ID: "1", Title: "Wells", Type: "ISSUE", Status: "Todo"}}},
					{Name: "Done"},
				},
				FetchedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
				Stale:     true,
			}, nil)

		resp := suite.e.GET(path).
			Expect().
			Status(http.StatusOK).
			JSON().Object()

		resp.HasValue("title", "Roadmap")
		resp.HasValue("stale", true)
		resp.HasValue("fetched_at", "2024-05-01T12:00:00Z")

		columns := resp.Value("columns").Array()
		columns.Length().IsEqual(2)

		item := columns.Value(0).Object().Value("items").Array().Value(0).Object()
		item.HasValue("title", "Wells")
		item.Value("assignees").Array().IsEmpty()
		item.Value("labels").Array().IsEmpty()

		columns.Value(1).Object().Value("items").Array().IsEmpty()
	})
}
