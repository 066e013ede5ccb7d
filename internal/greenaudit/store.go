// internal/greenaudit/store.go
package greenaudit

import (
	"context"
	"database/sql"

	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"
)

// Store persists audits to Postgres.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "greenaudit-store"}),
	}
}

func (s *Store) SaveAudit(ctx context.Context, audit *Audit) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO green_audits (
			audit_text, analysis_result, bill_number, account_number,
			kwh_consumption, total_amount
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		audit.AuditText, audit.AnalysisResult, audit.BillNumber, audit.AccountNumber,
		nullFloat(audit.KWhConsumption), nullFloat(audit.TotalAmount),
	).Scan(&id)
	if err != nil {
		return 0, stderrors.NewQueryExecutionFailedError("save audit", err)
	}
	return id, nil
}

// ListRecent returns the newest audits first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Audit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, audit_text, analysis_result, bill_number, account_number,
		       kwh_consumption, total_amount, created_at
		FROM green_audits
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("list audits", err)
	}
	defer rows.Close()

	var audits []Audit
	for rows.Next() {
		var a Audit
		var kwh, amount sql.NullFloat64
		if err := rows.Scan(&a.ID, &a.AuditText, &a.AnalysisResult, &a.BillNumber,
			&a.AccountNumber, &kwh, &amount, &a.CreatedAt); err != nil {
			return nil, stderrors.NewQueryExecutionFailedError("scan audit", err)
		}
		a.KWhConsumption = floatPtr(kwh)
		a.TotalAmount = floatPtr(amount)
		audits = append(audits, a)
	}
	return audits, rows.Err()
}

// Summarize totals consumption and cost over a set of audits.
func Summarize(audits []Audit) Summary {
	var summary Summary
	for _, a := range audits {
		if a.KWhConsumption != nil {
			summary.TotalKWh += *a.KWhConsumption
		}
		if a.TotalAmount != nil {
			summary.TotalCost += *a.TotalAmount
		}
	}
	summary.TotalKWh = round2(summary.TotalKWh)
	summary.TotalCost = round2(summary.TotalCost)
	return summary
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
