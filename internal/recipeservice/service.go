// Package recipeservice implements the recipe and comment operations on top
// of a store: validation, identifiers, timestamps and change notifications.
package recipeservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/starford/recipebox/internal/apperr"
	"github.com/starford/recipebox/internal/dataurl"
	"github.com/starford/recipebox/internal/models"
	"github.com/starford/recipebox/internal/store"
)

// Change kinds published after successful mutations.
const (
	EventRecipeCreated  = "recipe.created"
	EventRecipeUpdated  = "recipe.updated"
	EventRecipeDeleted  = "recipe.deleted"
	EventRecipeLiked    = "recipe.liked"
	EventCommentCreated = "comment.created"
	EventCommentDeleted = "comment.deleted"
)

// Notifier receives change notifications. commentID is empty for recipe events.
type Notifier interface {
	PublishRecipeEvent(kind, recipeID, commentID string)
}

type nopNotifier struct{}

func (nopNotifier) PublishRecipeEvent(string, string, string) {}

// Service coordinates validation and store operations.
type Service struct {
	db     store.RecipeStore
	notify Notifier
	now    func() time.Time
	newID  func() string
}

// NewService creates a new recipe service. notify may be nil.
func NewService(db store.RecipeStore, notify Notifier) *Service {
	if notify == nil {
		notify = nopNotifier{}
	}
	return &Service{
		db:     db,
		notify: notify,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// ListRecipes returns every recipe in insertion order.
func (s *Service) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	return s.db.ListRecipes(ctx)
}

// GetRecipe returns one recipe.
func (s *Service) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	return s.db.GetRecipe(ctx, id)
}

// CreateRecipe validates in and persists a new recipe with zero likes.
func (s *Service) CreateRecipe(ctx context.Context, in CreateRecipeInput) (*models.Recipe, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, apperr.Invalid(err)
	}
	now := s.now()
	r := &models.Recipe{
		ID:           s.newID(),
		Title:        in.Title,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		Image:        in.Image,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.db.InsertRecipe(ctx, r); err != nil {
		return nil, err
	}
	s.notify.PublishRecipeEvent(EventRecipeCreated, r.ID, "")
	return r, nil
}

// UpdateRecipe replaces the text fields of recipe id.
func (s *Service) UpdateRecipe(ctx context.Context, id string, in UpdateRecipeInput) (*models.Recipe, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, apperr.Invalid(err)
	}
	r, err := s.db.UpdateRecipe(ctx, id, models.RecipeFields{
		Title:        in.Title,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
	}, s.now())
	if err != nil {
		return nil, err
	}
	s.notify.PublishRecipeEvent(EventRecipeUpdated, id, "")
	return r, nil
}

// DeleteRecipe removes recipe id together with its comments.
func (s *Service) DeleteRecipe(ctx context.Context, id string) error {
	if err := s.db.DeleteRecipe(ctx, id); err != nil {
		return err
	}
	s.notify.PublishRecipeEvent(EventRecipeDeleted, id, "")
	return nil
}

// LikeRecipe adds one like and returns the new count.
func (s *Service) LikeRecipe(ctx context.Context, id string) (int64, error) {
	likes, err := s.db.IncrementLikes(ctx, id)
	if err != nil {
		return 0, err
	}
	s.notify.PublishRecipeEvent(EventRecipeLiked, id, "")
	return likes, nil
}

// RecipeImage decodes the stored image of recipe id.
func (s *Service) RecipeImage(ctx context.Context, id string) (*dataurl.Image, error) {
	r, err := s.db.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Image == "" {
		return nil, apperr.NotFound("image of recipe", id)
	}
	img, err := dataurl.Parse(r.Image)
	if err != nil {
		// Only reachable for rows written outside this service.
		return nil, apperr.NotFound("image of recipe", id)
	}
	return img, nil
}

// ListComments returns the comments of recipe recipeID.
func (s *Service) ListComments(ctx context.Context, recipeID string) ([]models.Comment, error) {
	return s.db.ListComments(ctx, recipeID)
}

// CreateComment validates in and attaches a new comment to recipe recipeID.
func (s *Service) CreateComment(ctx context.Context, recipeID string, in CreateCommentInput) (*models.Comment, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, apperr.Invalid(err)
	}
	c := &models.Comment{
		ID:        s.newID(),
		RecipeID:  recipeID,
		Author:    in.Author,
		Text:      in.Text,
		CreatedAt: s.now(),
	}
	if err := s.db.InsertComment(ctx, c); err != nil {
		return nil, err
	}
	s.notify.PublishRecipeEvent(EventCommentCreated, recipeID, c.ID)
	return c, nil
}

// DeleteComment removes comment commentID of recipe recipeID.
func (s *Service) DeleteComment(ctx context.Context, recipeID, commentID string) error {
	if err := s.db.DeleteComment(ctx, recipeID, commentID); err != nil {
		return err
	}
	s.notify.PublishRecipeEvent(EventCommentDeleted, recipeID, commentID)
	return nil
}
