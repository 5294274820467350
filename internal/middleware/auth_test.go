package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2beens/coachstats/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddlewareHandler_AuthCheck(t *testing.T) {
	authMiddleware := middleware.NewAuthMiddlewareHandler("s3cret", "/", "/health")

	testCases := []struct {
		name               string
		path               string
		method             string
		token              string
		expectedStatusCode int
	}{
		{
			name:               "AllowedPathWithoutToken",
			path:               "/health",
			method:             "GET",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "Options",
			path:               "/summaries/logbook",
			method:             "OPTIONS",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "MissingToken",
			path:               "/players/p1/logbook/summary",
			method:             "GET",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "InvalidToken",
			path:               "/players/p1/logbook/summary",
			method:             "GET",
			token:              "s3cre",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "ValidToken",
			path:               "/summaries/progress",
			method:             "POST",
			token:              "s3cret",
			expectedStatusCode: http.StatusTeapot,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, tc.path, nil)
			require.NoError(t, err)
			if tc.token != "" {
				req.Header.Add(middleware.TokenHeader, tc.token)
			}

			rr := httptest.NewRecorder()
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/health" {
					w.WriteHeader(http.StatusTeapot)
				}
			})
			authMiddleware.AuthCheck()(handler).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
		})
	}
}

func TestAuthMiddlewareHandler_Disabled(t *testing.T) {
	authMiddleware := middleware.NewAuthMiddlewareHandler("")

	req := httptest.NewRequest("GET", "/players/p1/progress/summary", nil)
	rr := httptest.NewRecorder()
	called := false
	authMiddleware.AuthCheck()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	})).ServeHTTP(rr, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rr.Code)
}
