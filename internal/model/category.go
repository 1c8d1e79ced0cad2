package model

// Category represents a spending category stored in the database.
type Category struct {
	Name        string
	Description string
	ID          int
}
