package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vadimbarashkov/ngo-site/internal/entity"
)

func (suite *HandlersTestSuite) TestListEvents() {
	const path = "/api/v1/events"

	suite.Run("invalid limit", func() {
		suite.e.GET(path).
			WithQuery("limit", "ten").
			Expect().
			Status(http.StatusBadRequest)
	})

	suite.Run("upstream error", func() {
		suite.eventsUseCaseMock.
			On("UpcomingEvents", mock.Anything, 0).
			Once().
			Return(nil, fmt.Errorf("calendar: %w", entity.ErrUpstream))

		suite.e.GET(path).
			Expect().
			Status(http.StatusBadGateway).
			Header("Cache-Control").IsEqual("no-store")
	})

	suite.Run("success", func() {
		suite.eventsUseCaseMock.
			On("UpcomingEvents", mock.Anything, 5).
			Once().
			Return([]entity.CalendarEvent{
				{
					ID:     "evt1",
					Title:  "Volunteer Day",
					Start:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
					End:    time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
					AllDay: true,
				},
			}, nil)

		resp := suite.e.GET(path).
			WithQuery("limit", 5).
			Expect().
			Status(http.StatusOK)

		resp.Header("Cache-Control").IsEqual("public, max-age=300")

		item := resp.JSON().Object().Value("items").Array().Value(0).Object()
		item.HasValue("id", "evt1")
		item.HasValue("all_day", true)
		item.NotContainsKey("location")
	})
}
