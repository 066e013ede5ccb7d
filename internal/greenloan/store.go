// internal/greenloan/store.go
package greenloan

import (
	"context"
	"database/sql"
	"time"

	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"
)

// Record is one stored analysis outcome.
type Record struct {
	ID             int64     `json:"id"`
	FileName       string    `json:"file_name"`
	EmployeeName   string    `json:"employee_name,omitempty"`
	CompanyName    string    `json:"company_name,omitempty"`
	MonthlySalary  *float64  `json:"monthly_salary,omitempty"`
	LoanAvailable  bool      `json:"loan_available"`
	LoanType       string    `json:"loan_type,omitempty"`
	InterestRate   *float64  `json:"interest_rate,omitempty"`
	MaxLoanAmount  *float64  `json:"max_loan_amount,omitempty"`
	LoanTermMonths *int64    `json:"loan_term_months,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Stats summarizes stored applications.
type Stats struct {
	Total    int64 `json:"total"`
	Approved int64 `json:"approved"`
}

// Store persists analysis outcomes so returning users can see their
// application history.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "greenloan-store"}),
	}
}

// SaveAnalysis records one completed analysis. The term is stored in
// months to match the historical schema.
func (s *Store) SaveAnalysis(ctx context.Context, session *Session, analysis *AnalysisResult, extracted *ExtractedFinancialData) (int64, error) {
	var termMonths sql.NullInt64
	if analysis.LoanTermYears != nil {
		termMonths = sql.NullInt64{Int64: int64(*analysis.LoanTermYears * 12), Valid: true}
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO green_loans (
			file_name, payslip_text, employee_name, company_name,
			monthly_salary, loan_available, loan_type,
			interest_rate, max_loan_amount, loan_term_months
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		session.FileName, session.ExtractedText,
		extracted.EmployeeName, extracted.CompanyName,
		nullFloat(extracted.MonthlySalary), analysis.LoanAvailable, analysis.LoanType,
		nullFloat(analysis.InterestRate), nullFloat(analysis.MaxLoanAmount), termMonths,
	).Scan(&id)
	if err != nil {
		return 0, stderrors.NewQueryExecutionFailedError("save analysis", err)
	}

	s.logger.Info("analysis stored", map[string]interface{}{
		"recordId": id,
		"approved": analysis.LoanAvailable,
	})
	return id, nil
}

// ListRecent returns the newest records first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file_name, employee_name, company_name, monthly_salary,
		       loan_available, loan_type, interest_rate, max_loan_amount,
		       loan_term_months, created_at
		FROM green_loans
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("list analyses", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var salary, rate, maxLoan sql.NullFloat64
		var termMonths sql.NullInt64
		if err := rows.Scan(&r.ID, &r.FileName, &r.EmployeeName, &r.CompanyName, &salary,
			&r.LoanAvailable, &r.LoanType, &rate, &maxLoan, &termMonths, &r.CreatedAt); err != nil {
			return nil, stderrors.NewQueryExecutionFailedError("scan analysis", err)
		}
		r.MonthlySalary = floatPtr(salary)
		r.InterestRate = floatPtr(rate)
		r.MaxLoanAmount = floatPtr(maxLoan)
		if termMonths.Valid {
			r.LoanTermMonths = &termMonths.Int64
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetStats counts stored and approved applications.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE loan_available)
		FROM green_loans`).Scan(&stats.Total, &stats.Approved)
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("loan stats", err)
	}
	return &stats, nil
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
