package models

// Observer is read-only reference data
type Observer struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
