package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/stretchr/testify/mock"
	"github.com/vadimbarashkov/ngo-site/internal/entity"
)

func (suite *HandlersTestSuite) TestSubmitContact() {
	const path = "/api/v1/contact"

	valid := map[string]string{
		"name":    "Jane Doe",
		"email":   "jane@example.org",
		"subject": "Partnership",
		"message": "We would like to help.",
	}

	suite.Run("validation error", func() {
		resp := suite.e.POST(path).
			WithJSON(map[string]string{
				"email":   "not an email",
				"message": strings.Repeat("x", 5001),
			}).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object()

		resp.HasValue("message", "validation error")

		errs := resp.Value("errors").Array()
		errs.Length().IsEqual(3)
		errs.Value(0).Object().HasValue("field", "name").HasValue("message", "this field is required")
		errs.Value(1).Object().HasValue("field", "email").HasValue("message", "invalid email")
		errs.Value(2).Object().HasValue("field", "message").HasValue("message", "must be at most 5000 characters long")
	})

	suite.Run("honeypot", func() {
		body := map[string]string{"botcheck": "on"}
		for k, v := range valid {
			body[k] = v
		}

		suite.e.POST(path).
			WithJSON(body).
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			HasValue("status", "success")

		suite.outreachUseCaseMock.AssertNotCalled(suite.T(), "SubmitContact", mock.Anything, mock.Anything)
	})

	suite.Run("upstream error", func() {
		suite.outreachUseCaseMock.
			On("SubmitContact", mock.Anything, mock.Anything).
			Once().
			Return(fmt.Errorf("web3forms: %w", entity.ErrUpstream))

		suite.e.POST(path).
			WithJSON(valid).
			Expect().
			Status(http.StatusBadGateway).
			JSON().Object().
			HasValue("message", "upstream service unavailable")
	})

	suite.Run("server error", func() {
		suite.outreachUseCaseMock.
			On("SubmitContact", mock.Anything, mock.Anything).
			Once().
			Return(errors.New("unknown error"))

		suite.e.POST(path).
			WithJSON(valid).
			Expect().
			Status(http.StatusInternalServerError)
	})

	suite.Run("success", func() {
		suite.outreachUseCaseMock.
			On("SubmitContact", mock.Anything, entity.ContactMessage{
				Name:    "Jane Doe",
				Email:   "jane@example.org",
				Subject: "Partnership",
				Message: "We would like to help.",
			}).
			Once().
			Return(nil)

		suite.e.POST(path).
			WithJSON(valid).
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			HasValue("status", "success").
			HasValue("message", "message sent")
	})
}

func (suite *HandlersTestSuite) TestSubscribe() {
	const path = "/api/v1/newsletter"

	suite.Run("empty request body", func() {
		suite.e.POST(path).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object().
			HasValue("message", "empty request body")
	})

	suite.Run("invalid email", func() {
		suite.e.POST(path).
			WithJSON(map[string]string{"email": "jane"}).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object().
			Value("errors").Array().Value(0).Object().HasValue("field", "email")
	})

	suite.Run("already subscribed", func() {
		suite.outreachUseCaseMock.
			On("Subscribe", mock.Anything, entity.Subscriber{Email: "jane@example.org"}).
			Once().
			Return(entity.ErrAlreadySubscribed)

		suite.e.POST(path).
			WithJSON(map[string]string{"email": "jane@example.org"}).
			Expect().
			Status(http.StatusConflict).
			JSON().Object().
			HasValue("message", "email is already subscribed")
	})

	suite.Run("upstream error", func() {
		suite.outreachUseCaseMock.
			On("Subscribe", mock.Anything, mock.Anything).
			Once().
			Return(fmt.Errorf("mailchimp: %w", entity.ErrUpstream))

		suite.e.POST(path).
			WithJSON(map[string]string{"email": "jane@example.org"}).
			Expect().
			Status(http.StatusBadGateway)
	})

	suite.Run("success", func() {
		suite.outreachUseCaseMock.
			On("Subscribe", mock.Anything, entity.Subscriber{Email: "jane@example.org", FirstName: "Jane"}).
			Once().
			Return(nil)

		suite.e.POST(path).
			WithJSON(map[string]string{"email": "jane@example.org", "first_name": "Jane"}).
			Expect().
			Status(http.StatusCreated).
			JSON().Object().
			HasValue("message", "subscribed")
	})
}
