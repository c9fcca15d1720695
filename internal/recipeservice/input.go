package recipeservice

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/recipebox/internal/dataurl"
)

// CreateRecipeInput is the payload for creating a recipe.
type CreateRecipeInput struct {
	Title        string `json:"title"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	Image        string `json:"image,omitempty"`
}

func (in *CreateRecipeInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Ingredients = strings.TrimSpace(in.Ingredients)
	in.Instructions = strings.TrimSpace(in.Instructions)
	in.Image = strings.TrimSpace(in.Image)
}

// Validate validates the create payload.
func (in CreateRecipeInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required),
		validation.Field(&in.Ingredients, validation.Required),
		validation.Field(&in.Instructions, validation.Required),
		validation.Field(&in.Image, validation.By(dataurl.Validate)),
	)
}

// UpdateRecipeInput is the payload for replacing a recipe's text fields.
type UpdateRecipeInput struct {
	Title        string `json:"title"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
}

func (in *UpdateRecipeInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Ingredients = strings.TrimSpace(in.Ingredients)
	in.Instructions = strings.TrimSpace(in.Instructions)
}

// Validate validates the update payload.
func (in UpdateRecipeInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required),
		validation.Field(&in.Ingredients, validation.Required),
		validation.Field(&in.Instructions, validation.Required),
	)
}

// CreateCommentInput is the payload for adding a comment.
type CreateCommentInput struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

func (in *CreateCommentInput) normalize() {
	in.Author = strings.TrimSpace(in.Author)
	in.Text = strings.TrimSpace(in.Text)
}

// Validate validates the comment payload.
func (in CreateCommentInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Author, validation.Required),
		validation.Field(&in.Text, validation.Required),
	)
}
