// Package models defines borrow records and the receipts the lifecycle
// operations hand back to callers.
package models

import (
	"time"

	"github.com/google/uuid"

	"biblio/pkg/domain"
)

// Loan is a borrow record. A loan is active while ReturnDate is nil and
// closed once it is set. At most one loan per (patron, book) pair may be
// active at a time; the lifecycle rules enforce this, not the schema.
type Loan struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	PatronID   domain.PatronID `db:"patron_id" json:"patron_id"`
	BookID     int64           `db:"book_id" json:"book_id"`
	BorrowDate time.Time       `db:"borrow_date" json:"borrow_date"`
	DueDate    time.Time       `db:"due_date" json:"due_date"`
	ReturnDate *time.Time      `db:"return_date" json:"return_date,omitempty"`
}

// Active reports whether the loan is still open.
func (l *Loan) Active() bool {
	return l.ReturnDate == nil
}

// ActiveLoan is an open borrow record joined with its book's title/author.
type ActiveLoan struct {
	LoanID     uuid.UUID `db:"loan_id" json:"loan_id"`
	BookID     int64     `db:"book_id" json:"book_id"`
	Title      string    `db:"title" json:"title"`
	Author     string    `db:"author" json:"author"`
	BorrowDate time.Time `db:"borrow_date" json:"borrow_date"`
	DueDate    time.Time `db:"due_date" json:"due_date"`
}

// HistoryEntry is any borrow record (open or closed) joined with its book,
// as shown in a patron's borrowing history.
type HistoryEntry struct {
	BookID     int64      `db:"book_id" json:"book_id"`
	Title      string     `db:"title" json:"title"`
	Author     string     `db:"author" json:"author"`
	BorrowDate time.Time  `db:"borrow_date" json:"borrow_date"`
	DueDate    time.Time  `db:"due_date" json:"due_date"`
	ReturnDate *time.Time `db:"return_date" json:"return_date,omitempty"`
}

// BorrowReceipt reports a successful borrow.
type BorrowReceipt struct {
	LoanID  uuid.UUID `json:"loan_id"`
	BookID  int64     `json:"book_id"`
	Title   string    `json:"title"`
	DueDate time.Time `json:"due_date"`
	Message string    `json:"message"`
}

// ReturnReceipt reports a successful return, including any late fee assessed.
type ReturnReceipt struct {
	BookID      int64     `json:"book_id"`
	Title       string    `json:"title"`
	DaysOverdue int       `json:"days_overdue"`
	LateFee     float64   `json:"late_fee"`
	ReturnedAt  time.Time `json:"returned_at"`
	Message     string    `json:"message"`
}
