package models

// Document is the whole persisted state. It is read and written as one unit.
type Document struct {
	Books   []Book   `json:"books"`
	Readers []Reader `json:"readers"`
}

// EmptyDocument returns the document used when nothing has been stored yet.
func EmptyDocument() *Document {
	return &Document{
		Books:   []Book{},
		Readers: []Reader{},
	}
}

// Normalize replaces nil slices with empty ones so they encode as [] rather than null.
func (d *Document) Normalize() {
	if d.Books == nil {
		d.Books = []Book{}
	}
	if d.Readers == nil {
		d.Readers = []Reader{}
	}
	for i := range d.Readers {
		if d.Readers[i].BooksIssued == nil {
			d.Readers[i].BooksIssued = []int{}
		}
	}
}
