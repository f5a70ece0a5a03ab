package domain

// Category is a service category as listed by the backend.
type Category struct {
	CategoryID int64  `json:"categoryId"`
	Name       string `json:"name"`
	IsActive   bool   `json:"isActive"`
}
