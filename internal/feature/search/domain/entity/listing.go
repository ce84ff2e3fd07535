// Package entity defines the domain models for the search feature.
package entity

// Listing is a symbol search result. It is never persisted.
type Listing struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}
