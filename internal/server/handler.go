package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"shopping-advisor-go/internal/logger"
	"shopping-advisor-go/internal/processor"
	"shopping-advisor-go/internal/report"
	"shopping-advisor-go/internal/upstream"
)

type Analyzer interface {
	Analyze(ctx context.Context, req processor.Request) (processor.Result, error)
	Status(ctx context.Context) processor.Status
}

type Handler struct {
	analyzer Analyzer
	log      *logger.Logger
}

// New wires the routes onto a ServeMux.
func New(a Analyzer, log *logger.Logger) http.Handler {
	h := &Handler{analyzer: a, log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.healthz)
	mux.HandleFunc("/status", h.status)
	mux.HandleFunc("/analyze", h.analyze)
	return mux
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	h.log.WithRequest(r).Debug("health check")
	fmt.Fprint(w, "ok")
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	reqLog := h.log.WithRequest(r).WithField("handler", "status")
	st := h.analyzer.Status(r.Context())
	code := http.StatusOK
	if !st.OK {
		code = http.StatusServiceUnavailable
	}
	reqLog.WithField("ok", st.OK).Info("status checked")
	writeJSON(w, code, st)
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) {
	reqID := logger.RequestID(r)
	reqLog := h.log.WithRequest(r).WithField("req_id", reqID).WithField("handler", "analyze")
	w.Header().Set(logger.RequestIDHeader, reqID)

	var req processor.Request
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req = processor.Request{URL: q.Get("url"), Budget: q.Get("budget"), Preferences: q.Get("preferences")}
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			reqLog.WithError(err).Warn("bad request body")
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	reqLog = reqLog.WithField("url", req.URL)
	reqLog.Info("analyze request received")

	start := time.Now()
	ctx := upstream.WithRequestID(r.Context(), reqID)
	res, err := h.analyzer.Analyze(ctx, req)
	reqLog = reqLog.WithField("duration_ms", time.Since(start).Milliseconds())
	if err != nil {
		code := statusFor(err)
		reqLog.WithError(err).WithField("status", code).Warn("analysis failed")
		writeJSON(w, code, res)
		return
	}
	reqLog.Info("analysis finished")

	if r.URL.Query().Get("format") == "xlsx" {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="analysis.xlsx"`)
		if err := report.Write(w, res); err != nil {
			reqLog.WithError(err).Error("failed to write workbook")
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, processor.ErrMissingURL), errors.Is(err, processor.ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
