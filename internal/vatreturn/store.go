// internal/vatreturn/store.go
package vatreturn

import (
	"context"
	"database/sql"

	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"
)

// Store persists VAT returns to Postgres.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "vatreturn-store"}),
	}
}

func (s *Store) Save(ctx context.Context, input *FilingInput, encrypted string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO vat_returns (
			business_name, business_id, vat_collected, vat_paid,
			reporting_period, phone_number, encrypted_message
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		input.BusinessName, input.BusinessID, input.VATCollected, input.VATPaid,
		input.ReportingPeriod, input.PhoneNumber, encrypted,
	).Scan(&id)
	if err != nil {
		return 0, stderrors.NewQueryExecutionFailedError("save vat return", err)
	}

	s.logger.Info("vat return stored", map[string]interface{}{
		"returnId": id,
		"period":   input.ReportingPeriod,
	})
	return id, nil
}

// ListRecent returns the newest filings first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Return, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, business_name, business_id, vat_collected, vat_paid,
		       reporting_period, phone_number, encrypted_message, created_at
		FROM vat_returns
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("list vat returns", err)
	}
	defer rows.Close()

	var returns []Return
	for rows.Next() {
		var r Return
		if err := rows.Scan(&r.ID, &r.BusinessName, &r.BusinessID, &r.VATCollected, &r.VATPaid,
			&r.ReportingPeriod, &r.PhoneNumber, &r.EncryptedMessage, &r.CreatedAt); err != nil {
			return nil, stderrors.NewQueryExecutionFailedError("scan vat return", err)
		}
		returns = append(returns, r)
	}
	return returns, rows.Err()
}
