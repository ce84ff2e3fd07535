// Package entity defines the domain models for the news feature.
package entity

// Article is a single news headline with its source URL.
type Article struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
