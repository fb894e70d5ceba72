package entity

type User struct {
	Base
	Name string
	Role string `gorm:"default:USER"`

	// Points is the spendable SP balance. It is only changed by the point
	// ledger and never goes negative.
	Points uint64
}

const (
	AdminRole = "ADMIN"
	UserRole  = "USER"
)
