// Package api provides the HTTP interface for the survey engine.
package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/heatpath/survey-engine/internal/domain"
	"github.com/heatpath/survey-engine/internal/engine"
	"github.com/heatpath/survey-engine/internal/output"
	"github.com/heatpath/survey-engine/internal/publish"
	"github.com/heatpath/survey-engine/internal/store"
)

// Handler holds all dependencies for the HTTP handlers.
type Handler struct {
	Engine      *engine.Engine
	DB          *sql.DB
	Assessments *store.AssessmentRepo
	Publisher   *publish.Publisher
	Log         *slog.Logger
}

// AssessmentResponse is the body for POST /api/v1/assessments.
type AssessmentResponse struct {
	ID            string               `json:"id"`
	CreatedAtUnix int64                `json:"createdAtUnix"`
	Result        *domain.EngineOutput `json:"result"`
}

// StoredAssessment is the body for GET /api/v1/assessments/{id}. Result
// is the output exactly as it was stored at assessment time.
type StoredAssessment struct {
	ID            string          `json:"id"`
	CreatedAtUnix int64           `json:"createdAtUnix"`
	Result        json.RawMessage `json:"result"`
}

// APIError is a structured error response.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateAssessment handles POST /api/v1/assessments. It runs the engine
// on the submitted survey, stores the result, and returns it.
func (h *Handler) CreateAssessment(w http.ResponseWriter, r *http.Request) {
	var survey domain.Survey
	if err := json.NewDecoder(r.Body).Decode(&survey); err != nil {
		writeJSON(w, http.StatusBadRequest, APIError{Code: domain.ErrSurveyDecode.Code, Message: domain.ErrSurveyDecode.Message})
		return
	}

	agg, err := h.Engine.Run(&survey)
	if err != nil {
		writeError(w, err)
		return
	}
	out := output.Build(agg, &survey)

	surveyJSON, err := json.Marshal(survey)
	if err != nil {
		writeError(w, err)
		return
	}
	outputJSON, err := json.Marshal(out)
	if err != nil {
		writeError(w, err)
		return
	}

	now := time.Now()
	rec := domain.AssessmentRecord{
		ID:              "asm-" + strconv.FormatInt(now.UnixNano(), 10),
		CreatedAtUnix:   now.Unix(),
		ContractVersion: out.Meta.ContractVersion,
		Signature:       string(agg.Facts.Signature),
		Recommendation:  out.Recommendation.Primary,
		Confidence:      string(out.Meta.Confidence.Level),
		SurveyJSON:      string(surveyJSON),
		OutputJSON:      string(outputJSON),
	}
	if err := h.Assessments.Insert(r.Context(), h.DB, rec); err != nil {
		writeError(w, err)
		return
	}

	h.publishStored(r.Context(), rec, out)

	writeJSON(w, http.StatusCreated, AssessmentResponse{
		ID:            rec.ID,
		CreatedAtUnix: rec.CreatedAtUnix,
		Result:        out,
	})
}

// ListAssessments handles GET /api/v1/assessments?limit=N.
func (h *Handler) ListAssessments(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err == nil {
			limit = parsed
		}
	}

	records, err := h.Assessments.ListRecent(r.Context(), h.DB, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []domain.AssessmentRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// GetAssessment handles GET /api/v1/assessments/{id}.
func (h *Handler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	rec, err := h.Assessments.GetByID(r.Context(), h.DB, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StoredAssessment{
		ID:            rec.ID,
		CreatedAtUnix: rec.CreatedAtUnix,
		Result:        json.RawMessage(rec.OutputJSON),
	})
}

// GetTimeline handles GET /api/v1/assessments/{id}/timeline. It serves
// the timeline visual from the stored output.
func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	rec, err := h.Assessments.GetByID(r.Context(), h.DB, id)
	if err != nil {
		writeError(w, err)
		return
	}

	var out domain.EngineOutput
	if err := json.Unmarshal([]byte(rec.OutputJSON), &out); err != nil {
		writeJSON(w, http.StatusInternalServerError, APIError{Code: 500, Message: "stored output is unreadable"})
		return
	}
	for _, v := range out.Visuals {
		if v.Type == domain.VisualTimeline24h && v.Timeline != nil {
			writeJSON(w, http.StatusOK, v.Timeline)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, APIError{Code: 404, Message: "assessment has no timeline visual"})
}

// publishStored enqueues a summary event for the stored assessment.
// Publish failures never surface to the client: the record is already
// persisted, and the publisher logs its own delivery problems.
func (h *Handler) publishStored(ctx context.Context, rec domain.AssessmentRecord, out *domain.EngineOutput) {
	if h.Publisher == nil {
		return
	}
	ev := publish.AssessmentEvent{
		AssessmentID:    rec.ID,
		CreatedAtUnix:   rec.CreatedAtUnix,
		ContractVersion: rec.ContractVersion,
		Recommendation:  rec.Recommendation,
		Confidence:      rec.Confidence,
		RedFlagCount:    len(out.RedFlags),
	}
	if err := h.Publisher.Publish(ctx, ev); err != nil && !errors.Is(err, domain.ErrPublisherDisabled) {
		h.Log.Warn("assessment_publish_failed", slog.String("assessment", rec.ID), slog.Any("err", err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	if engErr, ok := err.(*domain.EngineError); ok {
		status := http.StatusInternalServerError
		switch engErr.Code {
		case domain.ErrAssessmentNotFound.Code:
			status = http.StatusNotFound
		case domain.ErrSurveyNil.Code, domain.ErrSurveyDecode.Code:
			status = http.StatusBadRequest
		case domain.ErrContractVersion.Code:
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, APIError{Code: engErr.Code, Message: engErr.Message})
		return
	}
	writeJSON(w, http.StatusInternalServerError, APIError{Code: -1, Message: err.Error()})
}
