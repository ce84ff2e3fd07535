// Package entity defines the domain entities for the portfolio feature.
package entity

import "time"

// Holding represents a user's position in one symbol: the owned quantity
// and the average purchase price. A user holds at most one row per symbol;
// adding shares of an already-owned symbol merges into the existing row.
type Holding struct {
	// ID is the unique identifier for the holding.
	ID uint `gorm:"primaryKey"`

	// UserID scopes the holding to its owner.
	UserID uint `gorm:"not null;uniqueIndex:holding_user_symbol,priority:1"`

	// Symbol is the stock ticker symbol (e.g., "AAPL").
	Symbol string `gorm:"size:20;not null;uniqueIndex:holding_user_symbol,priority:2"`

	// Name is the display name of the security.
	Name string `gorm:"size:255;not null"`

	// Quantity is the number of shares owned. Always positive.
	Quantity float64 `gorm:"not null"`

	// AvgPrice is the average purchase price per share. Always positive.
	AvgPrice float64 `gorm:"not null"`

	// CreatedAt is the timestamp when the holding was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the holding was last updated.
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (Holding) TableName() string {
	return "holdings"
}
