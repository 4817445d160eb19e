package models

// User represents an authenticated shopper.
type User struct {
	BaseModel
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Phone        string  `gorm:"uniqueIndex" json:"phone"`
	DisplayName  string  `json:"display_name"`
	PasswordHash string  `json:"-"`
	Orders       []Order `json:"orders,omitempty"`
}
