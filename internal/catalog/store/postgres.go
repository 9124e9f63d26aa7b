package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"biblio/internal/catalog/models"
	"biblio/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// Postgres persists the catalog in PostgreSQL.
type Postgres struct {
	db *sqlx.DB
}

func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, book *models.Book) error {
	const query = `
		INSERT INTO books (title, author, isbn, total_copies, available_copies)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		book.Title, book.Author, book.ISBN, book.TotalCopies, book.AvailableCopies,
	).Scan(&book.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id int64) (*models.Book, error) {
	var book models.Book
	err := s.db.GetContext(ctx, &book, `SELECT * FROM books WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find book by id: %w", err)
	}
	return &book, nil
}

func (s *Postgres) FindByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	var book models.Book
	err := s.db.GetContext(ctx, &book, `SELECT * FROM books WHERE isbn = $1`, isbn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find book by isbn: %w", err)
	}
	return &book, nil
}

func (s *Postgres) List(ctx context.Context) ([]models.Book, error) {
	books := []models.Book{}
	err := s.db.SelectContext(ctx, &books, `SELECT * FROM books ORDER BY lower(title)`)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (s *Postgres) AdjustAvailability(ctx context.Context, id int64, delta int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE books SET available_copies = available_copies + $2 WHERE id = $1`, id, delta)
	if err != nil {
		return fmt.Errorf("update availability: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update availability: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
