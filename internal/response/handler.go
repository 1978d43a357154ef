package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/GregMSThompson/covid-tracker/pkg/logger"
)

type ResponseHandler interface {
	WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any)
	WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string)
	HandleError(w http.ResponseWriter, r *http.Request, err error)
}

type responseHandler struct {
	Log *slog.Logger
}

func New(log *slog.Logger) *responseHandler {
	return &responseHandler{Log: log}
}

type SuccessEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

func (h *responseHandler) WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	h.writeJSON(w, r, status, SuccessEnvelope{Success: true, Data: data})
}

// writeJSON cannot report encode failures to the client once the header is out; it logs them.
func (h *responseHandler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log := logger.FromContext(r.Context())
		if log == slog.Default() && h.Log != nil {
			log = h.Log
		}
		log.Error("failed to encode response", "error", err, "status", status)
	}
}
