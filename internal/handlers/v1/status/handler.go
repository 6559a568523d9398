package status

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carson-networks/deal-ledger/internal/logging"
)

// queueReporter reports how many actions wait in the operator queues.
type queueReporter interface {
	QueueDepth() int
}

type Handler struct {
	Operator queueReporter
}

func NewHandler(op queueReporter) Handler {
	return Handler{Operator: op}
}

type statusBody struct {
	Status string `json:"status"`
	Queued int    `json:"queued"`
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	body := statusBody{Status: "ok"}
	if h.Operator != nil {
		body.Queued = h.Operator.QueueDepth()
	}
	logData.AddData("queued", body.Queued)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(body)
}
