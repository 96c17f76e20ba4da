package models

// Reader is a library member. HoursRead starts at zero and is not updated
// by any endpoint.
type Reader struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	BooksIssued []int   `json:"booksIssued"`
	HoursRead   float64 `json:"hoursRead"`
}
