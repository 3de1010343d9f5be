package store

import (
	"context"
	"database/sql"

	"github.com/heatpath/survey-engine/internal/domain"
)

// AssessmentRepo handles persistence for assessment records.
type AssessmentRepo struct{}

// Insert stores a completed assessment.
func (r *AssessmentRepo) Insert(ctx context.Context, db *sql.DB, rec domain.AssessmentRecord) error {
	const q = `INSERT INTO assessments (id, created_at_unix, contract_version, signature, recommendation, confidence, survey_json, output_json)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, q,
		rec.ID,
		rec.CreatedAtUnix,
		rec.ContractVersion,
		rec.Signature,
		rec.Recommendation,
		rec.Confidence,
		rec.SurveyJSON,
		rec.OutputJSON,
	)
	if err != nil {
		return domain.WrapEngineError(domain.ErrStoreWrite.Code, "insert assessment", err)
	}
	return nil
}

// GetByID retrieves a stored assessment, bodies included.
func (r *AssessmentRepo) GetByID(ctx context.Context, db *sql.DB, id string) (*domain.AssessmentRecord, error) {
	const q = `SELECT id, created_at_unix, contract_version, signature, recommendation, confidence, survey_json, output_json
FROM assessments WHERE id = ?`

	row := db.QueryRowContext(ctx, q, id)

	var rec domain.AssessmentRecord
	err := row.Scan(&rec.ID, &rec.CreatedAtUnix, &rec.ContractVersion, &rec.Signature,
		&rec.Recommendation, &rec.Confidence, &rec.SurveyJSON, &rec.OutputJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrAssessmentNotFound
		}
		return nil, domain.WrapEngineError(domain.ErrStoreQuery.Code, "get assessment", err)
	}
	return &rec, nil
}

// ListRecent returns summaries of the most recent assessments, newest
// first; ties break on ID so pagination stays stable.
func (r *AssessmentRepo) ListRecent(ctx context.Context, db *sql.DB, limit int) ([]domain.AssessmentRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `SELECT id, created_at_unix, contract_version, signature, recommendation, confidence
FROM assessments ORDER BY created_at_unix DESC, id DESC LIMIT ?`

	rows, err := db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, domain.WrapEngineError(domain.ErrStoreQuery.Code, "list assessments", err)
	}
	defer rows.Close()

	var out []domain.AssessmentRecord
	for rows.Next() {
		var rec domain.AssessmentRecord
		if err := rows.Scan(&rec.ID, &rec.CreatedAtUnix, &rec.ContractVersion, &rec.Signature,
			&rec.Recommendation, &rec.Confidence); err != nil {
			return nil, domain.WrapEngineError(domain.ErrStoreQuery.Code, "scan assessment row", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
