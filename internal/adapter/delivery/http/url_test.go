package http

import (
	"errors"
	"net/http"

	"github.com/gavv/httpexpect/v2"
	"github.com/stretchr/testify/mock"
	"github.com/vadimbarashkov/ngo-site/internal/entity"
)

func (suite *HandlersTestSuite) TestShortenURL() {
	const path = "/api/v1/links"

	suite.Run("empty request body", func() {
		suite.e.POST(path).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object().
			HasValue("status", "error").
			HasValue("message", "empty request body")
	})

	suite.Run("invalid request body", func() {
		suite.e.POST(path).
			WithJSON("invalid body").
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object().
			HasValue("status", "error").
			HasValue("message", "invalid request body")
	})

	suite.Run("invalid url", func() {
		resp := suite.e.POST(path).
			WithJSON(map[string]string{"url": "invalid url"}).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.HasValue("message", "validation error")
		resp.Value("errors").Array().Length().IsEqual(1)
		resp.Value("errors").Array().Value(0).Object().
			HasValue("field", "url").
			HasValue("message", "invalid url")
	})

	suite.Run("server error", func() {
		suite.urlUseCaseMock.
			On("ShortenURL", mock.Anything, "https://example.org").
			Once().
			Return(nil, errors.New("unknown error"))

		suite.e.POST(path).
			WithJSON(map[string]string{"url": "https://example.org"}).
			Expect().
			Status(http.StatusInternalServerError).
			JSON().Object().
			HasValue("status", "error").
			HasValue("message", "server error occurred")
	})

	suite.Run("success", func() {
		suite.urlUseCaseMock.
			On("ShortenURL", mock.Anything, "https://example.org").
			Once().
			Return(&entity.URL{
				ID:          1,
				ShortCode:   "abc12",
				OriginalURL: "https://example.org",
			}, nil)

		suite.e.POST(path).
			WithJSON(map[string]string{"url": "https://example.org"}).
			Expect().
			Status(http.StatusCreated).
			JSON().Object().
			HasValue("id", 1).
			HasValue("short_code", "abc12").
			HasValue("short_url", "https://ngo.example/s/abc12").
			HasValue("original_url", "https://example.org")
	})

	suite.Run("short url from request host", func() {
		opts := suite.options()
		opts.PublicBaseURL = ""
		suite.serve(opts)

		suite.urlUseCaseMock.
			On("ShortenURL", mock.Anything, "https://example.org").
			Once().
			Return(&entity.URL{ShortCode: "abc12", OriginalURL: "https://example.org"}, nil)

		suite.e.POST(path).
			WithJSON(map[string]string{"url": "https://example.org"}).
			Expect().
			Status(http.StatusCreated).
			JSON().Object().
			HasValue("short_url", suite.server.URL+"/s/abc12")
	})
}

func (suite *HandlersTestSuite) TestRedirect() {
	const path = "/s/{shortCode}"

	suite.Run("url not found", func() {
		suite.urlUseCaseMock.
			On("ResolveShortCode", mock.Anything, "abc12").
			Once().
			Return(nil, entity.ErrURLNotFound)

		suite.e.GET(path, "abc12").
			WithRedirectPolicy(httpexpect.DontFollowRedirects).
			Expect().
			Status(http.StatusNotFound).
			JSON().Object().
			HasValue("message", "url not found")
	})

	suite.Run("server error", func() {
		suite.urlUseCaseMock.
			On("ResolveShortCode", mock.Anything, "abc12").
			Once().
			Return(nil, errors.New("unknown error"))

		suite.e.GET(path, "abc12").
			WithRedirectPolicy(httpexpect.DontFollowRedirects).
			Expect().
			Status(http.StatusInternalServerError)
	})

	suite.Run("success", func() {
		suite.urlUseCaseMock.
			On("ResolveShortCode", mock.Anything, "abc12").
			Once().
			Return(&entity.URL{ShortCode: "abc12", OriginalURL: "https://example.org/donate"}, nil)

		resp := suite.e.GET(path, "abc12").
			WithRedirectPolicy(httpexpect.DontFollowRedirects).
			Expect().
			Status(http.StatusFound)

		resp.Header("Location").IsEqual("https://example.org/donate")
		resp.Header("Cache-Control").IsEqual("no-store")
	})
}

func (suite *HandlersTestSuite) TestGetURLStats() {
	const path = "/api/v1/links/{shortCode}/stats"

	suite.Run("url not found", func() {
		suite.urlUseCaseMock.
			On("GetURLStats", mock.Anything, "abc12").
			Once().
			Return(nil, entity.ErrURLNotFound)

		suite.e.GET(path, "abc12").
			Expect().
			Status(http.StatusNotFound).
			JSON().Object().
			HasValue("status", "error").
			HasValue("message", "url not found")
	})

	suite.Run("server error", func() {
		suite.urlUseCaseMock.
			On("GetURLStats", mock.Anything, "abc12").
			Once().
			Return(nil, errors.New("unknown error"))

		suite.e.GET(path, "abc12").
			Expect().
			Status(http.StatusInternalServerError)
	})

	suite.Run("success", func() {
		suite.urlUseCaseMock.
			On("GetURLStats", mock.Anything, "abc12").
			Once().
			Return(&entity.URL{
				ID:          1,
				ShortCode:   "abc12",
				OriginalURL: "https://example.org",
				URLStats:    entity.URLStats{AccessCount: 42},
			}, nil)

		resp := suite.e.GET(path, "abc12").
			Expect().
			Status(http.StatusOK).
			JSON().Object()

		resp.HasValue("short_code", "abc12")
		resp.Value("stats").Object().HasValue("access_count", 42)
	})
}
