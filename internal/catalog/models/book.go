// Package models defines catalog entities.
package models

// Book is a catalog entry. AvailableCopies tracks how many of TotalCopies
// are currently on the shelf; the invariant 0 <= available <= total is
// maintained by the circulation rules, not by the store.
type Book struct {
	ID              int64  `db:"id" json:"id"`
	Title           string `db:"title" json:"title"`
	Author          string `db:"author" json:"author"`
	ISBN            string `db:"isbn" json:"isbn"`
	TotalCopies     int    `db:"total_copies" json:"total_copies"`
	AvailableCopies int    `db:"available_copies" json:"available_copies"`
}

// Available reports whether at least one copy is on the shelf.
func (b *Book) Available() bool {
	return b.AvailableCopies > 0
}
