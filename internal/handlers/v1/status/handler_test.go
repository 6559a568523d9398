package status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/deal-ledger/internal/logging"
)

type fixedQueue int

func (q fixedQueue) QueueDepth() int {
	return int(q)
}

func createTestLogData() *logging.LogData {
	logger := logging.SetupLogging("info")
	return logging.NewLogData(logger)
}

func TestHandler_GoodMethod(t *testing.T) {
	statusHandler := NewHandler(fixedQueue(3))
	req := httptest.NewRequest(http.MethodGet, "/status", nil)

	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData())
	assert.NoError(t, err)

	res := w.Result()
	assert.Equal(t, 200, res.StatusCode)

	var body statusBody
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 3, body.Queued)
}

func TestHandler_NoOperator(t *testing.T) {
	statusHandler := NewHandler(nil)
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()

	assert.NoError(t, statusHandler.Handler(w, req, createTestLogData()))
	assert.Equal(t, 200, w.Result().StatusCode)
}

func TestHandler_BadMethod(t *testing.T) {
	statusHandler := NewHandler(fixedQueue(0))
	req := httptest.NewRequest(http.MethodPost, "/status", nil)
	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData())
	assert.Error(t, err)

	res := w.Result()
	assert.Equal(t, 400, res.StatusCode)
}
