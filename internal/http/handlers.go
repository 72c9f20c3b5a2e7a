package http

import (
	"context"
	"net/http"
	"time"

	"finance/internal/core"
	applog "finance/internal/log"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports whether the store answers a ping.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := s.health.Ping(ctx); err != nil {
			applog.FromContext(r.Context()).WarnContext(r.Context(), "Readiness check failed",
				applog.FieldError, err.Error())
			NewJSONResponse().
				Status(http.StatusServiceUnavailable).
				Body(map[string]string{"status": "not_ready", "storage": "unavailable"}).
				Write(w)
			return
		}
	}

	NewJSONResponse().
		Body(map[string]string{"status": "ready", "timestamp": time.Now().UTC().Format(time.RFC3339)}).
		Write(w)
}

// handleListTransactions returns every transaction of the user, newest
// first. An unknown user yields an empty array.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := pathVar(r, "user_id")

	txs, err := s.svc.List(r.Context(), userID)
	if err != nil {
		s.errorResponse(r, applog.OpList, err).Write(w)
		return
	}
	if txs == nil {
		txs = []core.Transaction{}
	}
	NewJSONResponse().Body(txs).Write(w)
}

// handleSummary returns balance, income and expense for the user.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	userID := pathVar(r, "user_id")

	sum, err := s.svc.Summary(r.Context(), userID)
	if err != nil {
		s.errorResponse(r, applog.OpSummary, err).Write(w)
		return
	}
	NewJSONResponse().Body(sum).Write(w)
}

// handleCreateTransaction inserts a transaction and echoes the stored row.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	in, err := decodeCreateInput(w, r)
	if err != nil {
		s.errorResponse(r, applog.OpCreate, err).Write(w)
		return
	}

	tx, err := s.svc.Create(r.Context(), in)
	if err != nil {
		s.errorResponse(r, applog.OpCreate, err).Write(w)
		return
	}
	NewJSONResponse().Status(http.StatusCreated).Body(tx).Write(w)
}

// handleDeleteTransaction removes a transaction by numeric id.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(pathVar(r, "id"))
	if err != nil {
		s.errorResponse(r, applog.OpDelete, err).Write(w)
		return
	}

	if _, err := s.svc.Delete(r.Context(), id); err != nil {
		s.errorResponse(r, applog.OpDelete, err).Write(w)
		return
	}
	NewJSONResponse().Message(msgDeleted).Write(w)
}
