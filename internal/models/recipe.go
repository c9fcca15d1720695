// Package models defines the domain types for recipebox.
package models

import "time"

// Recipe is a user-submitted cooking entry.
type Recipe struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Ingredients  string    `json:"ingredients"`
	Instructions string    `json:"instructions"`
	Image        string    `json:"image,omitempty"` // data URL
	Likes        int64     `json:"likes"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RecipeFields holds the text fields replaced by an update.
type RecipeFields struct {
	Title        string
	Ingredients  string
	Instructions string
}

// Comment is a text annotation attached to exactly one recipe.
type Comment struct {
	ID        string    `json:"id"`
	RecipeID  string    `json:"recipeId"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// FileMetadata is a lightweight description of a recipe file on disk.
type FileMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ImportRecord links an imported file to the recipe it produced.
type ImportRecord struct {
	Path     string
	Checksum string
	RecipeID string
}
