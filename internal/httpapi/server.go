package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/grantlyhq/grantly/internal/grantly/service"
	"github.com/grantlyhq/grantly/internal/grantly/store"
)

type Dependencies struct {
	Logger       *log.Logger
	Addr         string
	Applications *service.ApplicationService
	Eligibility  *service.EligibilityService
	Audit        *service.AuditQueryService
	Calendar     *service.CalendarService
}

type Server struct {
	httpServer   *http.Server
	logger       *log.Logger
	mux          *http.ServeMux
	applications *service.ApplicationService
	eligibility  *service.EligibilityService
	audit        *service.AuditQueryService
	calendar     *service.CalendarService
}

func NewServer(d Dependencies) *Server {
	mux := http.NewServeMux()

	s := &Server{
		logger:       d.Logger,
		mux:          mux,
		applications: d.Applications,
		eligibility:  d.Eligibility,
		audit:        d.Audit,
		calendar:     d.Calendar,
	}

	mux.HandleFunc("POST /v1/applications", s.handleSubmit)
	mux.HandleFunc("PATCH /v1/applications/{id}", s.handleUpdateStatus)
	mux.HandleFunc("DELETE /v1/applications/{id}", s.handleWithdraw)
	mux.HandleFunc("GET /v1/applications/{id}/status", s.handleApplicationStatus)
	mux.HandleFunc("GET /v1/scholarships/{id}/eligible", s.handleEligibleStudents)
	mux.HandleFunc("GET /v1/audit", s.handleAuditWindow)
	mux.HandleFunc("GET /v1/calendar/dates", s.handleListDates)
	mux.HandleFunc("POST /v1/calendar/dates", s.handleAddDates)
	mux.HandleFunc("DELETE /v1/calendar/dates/{date}", s.handleRemoveDate)

	handler := loggingMiddleware(d.Logger, mux)

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// actor pulls the caller identity off the request. Every mutation needs one;
// reads do not.
func actor(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Actor"))
}

// ── Applications (protected) ─────────────────────────────────────────────────

type submitRequest struct {
	StudentID     string `json:"student_id"`
	ScholarshipID string `json:"scholarship_id"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	app, err := s.applications.Submit(r.Context(), actor(r), req.StudentID, req.ScholarshipID)
	if err != nil {
		s.writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	err := s.applications.UpdateStatus(r.Context(), actor(r), r.PathValue("id"), req.Status)
	if err != nil {
		s.writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	err := s.applications.Withdraw(r.Context(), actor(r), r.PathValue("id"))
	if err != nil {
		s.writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// writeMutationError maps gate and store errors onto HTTP statuses. Policy
// denials are 403 with the reasons; an audit write failure is a 500 because
// the attempt's bookkeeping could not be guaranteed.
func (s *Server) writeMutationError(w http.ResponseWriter, err error) {
	var pv *service.PolicyViolationError
	switch {
	case errors.As(err, &pv):
		writeDenied(w, pv.Reasons)
	case errors.Is(err, service.ErrInvalidActor):
		writeError(w, http.StatusBadRequest, "missing_actor", "X-Actor header is required")
	case errors.Is(err, service.ErrInvalidApplication),
		errors.Is(err, service.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, store.ErrDuplicate):
		writeError(w, http.StatusConflict, "duplicate", "application already exists")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "application not found")
	case errors.Is(err, service.ErrAuditWrite):
		s.logger.Printf("audit write failure: %v", err)
		writeError(w, http.StatusInternalServerError, "audit_write_failed", "attempt could not be audited")
	default:
		s.logger.Printf("mutation error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
	}
}

// ── Read-only queries ────────────────────────────────────────────────────────

func (s *Server) handleApplicationStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.eligibility.ApplicationStatus(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "application not found")
			return
		}
		s.logger.Printf("application status error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func (s *Server) handleEligibleStudents(w http.ResponseWriter, r *http.Request) {
	students, err := s.eligibility.EligibleStudents(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "scholarship not found")
			return
		}
		s.logger.Printf("eligible students error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"students": students})
}

func (s *Server) handleAuditWindow(w http.ResponseWriter, r *http.Request) {
	hours := 0
	if v := r.URL.Query().Get("hours"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_hours", "hours must be a non-negative integer")
			return
		}
		hours = n
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	records, err := s.audit.Window(r.Context(), hours, limit)
	if err != nil {
		s.logger.Printf("audit window error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

// ── Calendar administration ──────────────────────────────────────────────────

type calendarDatesRequest struct {
	Dates []string `json:"dates"`
}

func (s *Server) handleListDates(w http.ResponseWriter, r *http.Request) {
	dates, err := s.calendar.ListDates(r.Context())
	if err != nil {
		s.logger.Printf("list dates error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dates": dates})
}

func (s *Server) handleAddDates(w http.ResponseWriter, r *http.Request) {
	var req calendarDatesRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	if err := s.calendar.AddDates(r.Context(), req.Dates); err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
			return
		}
		s.logger.Printf("add dates error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleRemoveDate(w http.ResponseWriter, r *http.Request) {
	if err := s.calendar.RemoveDates(r.Context(), []string{r.PathValue("date")}); err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
			return
		}
		s.logger.Printf("remove date error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
