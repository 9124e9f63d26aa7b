package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"biblio/internal/circulation/models"
	"biblio/pkg/domain"
	"biblio/pkg/platform/sentinel"
)

// Postgres persists borrow records in PostgreSQL.
type Postgres struct {
	db *sqlx.DB
}

func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, loan *models.Loan) error {
	const query = `
		INSERT INTO loans (id, patron_id, book_id, borrow_date, due_date)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		loan.ID, loan.PatronID, loan.BookID, loan.BorrowDate, loan.DueDate)
	if err != nil {
		return fmt.Errorf("insert borrow record: %w", err)
	}
	return nil
}

func (s *Postgres) CountActiveByPatron(ctx context.Context, patronID domain.PatronID) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		`SELECT count(*) FROM loans WHERE patron_id = $1 AND return_date IS NULL`, patronID)
	if err != nil {
		return 0, fmt.Errorf("count active loans: %w", err)
	}
	return count, nil
}

func (s *Postgres) ListActiveByPatron(ctx context.Context, patronID domain.PatronID) ([]models.ActiveLoan, error) {
	const query = `
		SELECT l.id AS loan_id, l.book_id, b.title, b.author, l.borrow_date, l.due_date
		FROM loans l
		JOIN books b ON b.id = l.book_id
		WHERE l.patron_id = $1 AND l.return_date IS NULL
		ORDER BY l.borrow_date
	`
	active := []models.ActiveLoan{}
	if err := s.db.SelectContext(ctx, &active, query, patronID); err != nil {
		return nil, fmt.Errorf("list active loans: %w", err)
	}
	return active, nil
}

func (s *Postgres) Close(ctx context.Context, patronID domain.PatronID, bookID int64, returnedAt time.Time) error {
	const query = `
		UPDATE loans SET return_date = $3
		WHERE patron_id = $1 AND book_id = $2 AND return_date IS NULL
	`
	res, err := s.db.ExecContext(ctx, query, patronID, bookID, returnedAt)
	if err != nil {
		return fmt.Errorf("close borrow record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("close borrow record: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) MostRecent(ctx context.Context, patronID domain.PatronID, bookID int64) (*models.Loan, error) {
	const query = `
		SELECT * FROM loans
		WHERE patron_id = $1 AND book_id = $2
		ORDER BY borrow_date DESC
		LIMIT 1
	`
	var loan models.Loan
	err := s.db.GetContext(ctx, &loan, query, patronID, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find most recent loan: %w", err)
	}
	return &loan, nil
}

func (s *Postgres) History(ctx context.Context, patronID domain.PatronID) ([]models.HistoryEntry, error) {
	const query = `
		SELECT l.book_id, b.title, b.author, l.borrow_date, l.due_date, l.return_date
		FROM loans l
		JOIN books b ON b.id = l.book_id
		WHERE l.patron_id = $1
		ORDER BY l.borrow_date DESC
	`
	history := []models.HistoryEntry{}
	if err := s.db.SelectContext(ctx, &history, query, patronID); err != nil {
		return nil, fmt.Errorf("load borrow history: %w", err)
	}
	return history, nil
}
