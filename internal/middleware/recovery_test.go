package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/issue-battleships/internal/testutil"
)

func teapot(w http.ResponseWriter, _ *http.Request, _ any) {
	w.WriteHeader(http.StatusTeapot)
}

func TestRecoveryWritesPanicResponse(t *testing.T) {
	logger, logs := testutil.NewLogBuffer()
	h := Recovery(logger, teapot)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("board exploded")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/moves", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	require.Equal(t, []string{"handler panicked"}, logs.Messages())
	assert.Equal(t, "/api/v1/moves", logs.Records()[0]["path"])
	assert.Equal(t, false, logs.Records()[0]["response_started"])
}

func TestRecoveryLeavesStartedResponse(t *testing.T) {
	logger, logs := testutil.NewLogBuffer()
	h := Recovery(logger, teapot)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		panic("after header")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusAccepted, rr.Code)
	require.Len(t, logs.Records(), 1)
	assert.Equal(t, true, logs.Records()[0]["response_started"])
}

func TestRecoveryReraisesAbort(t *testing.T) {
	h := Recovery(testutil.NopLogger(), teapot)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
