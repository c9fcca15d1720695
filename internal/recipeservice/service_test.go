package recipeservice

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/recipebox/internal/apperr"
	"github.com/starford/recipebox/internal/dataurl"
	"github.com/starford/recipebox/internal/testutil"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) PublishRecipeEvent(kind, recipeID, commentID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, kind)
}

func (n *recordingNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

func newTestService(t *testing.T) (*Service, *recordingNotifier) {
	t.Helper()
	n := &recordingNotifier{}
	return NewService(testutil.TestDB(t), n), n
}

func toastInput() CreateRecipeInput {
	return CreateRecipeInput{Title: "Toast", Ingredients: "Bread", Instructions: "Toast it"}
}

func TestCreateRecipe_AssignsIDAndZeroLikes(t *testing.T) {
	svc, n := newTestService(t)

	r, err := svc.CreateRecipe(context.Background(), toastInput())
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "Toast", r.Title)
	assert.Equal(t, int64(0), r.Likes)
	assert.False(t, r.CreatedAt.IsZero())
	assert.Equal(t, []string{EventRecipeCreated}, n.kinds())
}

func TestCreateRecipe_TrimsFields(t *testing.T) {
	svc, _ := newTestService(t)

	r, err := svc.CreateRecipe(context.Background(), CreateRecipeInput{
		Title: "  Toast ", Ingredients: "\tBread\n", Instructions: " Toast it ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Toast", r.Title)
	assert.Equal(t, "Bread", r.Ingredients)
	assert.Equal(t, "Toast it", r.Instructions)
}

func TestCreateRecipe_MissingFields(t *testing.T) {
	tests := map[string]CreateRecipeInput{
		"title":        {Ingredients: "Bread", Instructions: "Toast it"},
		"ingredients":  {Title: "Toast", Instructions: "Toast it"},
		"instructions": {Title: "Toast", Ingredients: "Bread"},
		"whitespace":   {Title: "   ", Ingredients: "Bread", Instructions: "Toast it"},
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			svc, n := newTestService(t)
			_, err := svc.CreateRecipe(context.Background(), in)
			require.ErrorIs(t, err, apperr.ErrValidation)

			list, err := svc.ListRecipes(context.Background())
			require.NoError(t, err)
			assert.Empty(t, list)
			assert.Empty(t, n.kinds())
		})
	}
}

func TestCreateRecipe_ImageValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	in := toastInput()
	in.Image = "not-a-data-url"
	_, err := svc.CreateRecipe(ctx, in)
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.True(t, strings.Contains(err.Error(), "image"), err.Error())

	in.Image = dataurl.Encode("image/png", []byte("png-bytes"))
	r, err := svc.CreateRecipe(ctx, in)
	require.NoError(t, err)

	img, err := svc.RecipeImage(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MediaType)
	assert.Equal(t, []byte("png-bytes"), img.Data)
}

func TestRecipeImage_NoImage(t *testing.T) {
	svc, _ := newTestService(t)
	r, err := svc.CreateRecipe(context.Background(), toastInput())
	require.NoError(t, err)

	_, err = svc.RecipeImage(context.Background(), r.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateRecipe(t *testing.T) {
	svc, n := newTestService(t)
	ctx := context.Background()

	r, err := svc.CreateRecipe(ctx, toastInput())
	require.NoError(t, err)
	_, err = svc.LikeRecipe(ctx, r.ID)
	require.NoError(t, err)

	updated, err := svc.UpdateRecipe(ctx, r.ID, UpdateRecipeInput{
		Title: "French Toast", Ingredients: "Bread, eggs", Instructions: "Dip and fry",
	})
	require.NoError(t, err)
	assert.Equal(t, "French Toast", updated.Title)
	assert.Equal(t, int64(1), updated.Likes)

	_, err = svc.UpdateRecipe(ctx, r.ID, UpdateRecipeInput{Title: "x"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.UpdateRecipe(ctx, "missing", UpdateRecipeInput{Title: "a", Ingredients: "b", Instructions: "c"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.Equal(t, []string{EventRecipeCreated, EventRecipeLiked, EventRecipeUpdated}, n.kinds())
}

func TestLikeRecipe_Monotonic(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	r, err := svc.CreateRecipe(ctx, toastInput())
	require.NoError(t, err)

	for want := int64(1); want <= 3; want++ {
		got, err := svc.LikeRecipe(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = svc.LikeRecipe(ctx, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestComments(t *testing.T) {
	svc, n := newTestService(t)
	ctx := context.Background()

	r, err := svc.CreateRecipe(ctx, toastInput())
	require.NoError(t, err)

	_, err = svc.CreateComment(ctx, r.ID, CreateCommentInput{Author: "seal"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.CreateComment(ctx, "missing", CreateCommentInput{Author: "seal", Text: "yum"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	c, err := svc.CreateComment(ctx, r.ID, CreateCommentInput{Author: " seal ", Text: "yum"})
	require.NoError(t, err)
	assert.Equal(t, "seal", c.Author)
	assert.Equal(t, r.ID, c.RecipeID)

	list, err := svc.ListComments(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)

	require.NoError(t, svc.DeleteComment(ctx, r.ID, c.ID))
	assert.ErrorIs(t, svc.DeleteComment(ctx, r.ID, c.ID), apperr.ErrNotFound)

	require.NoError(t, svc.DeleteRecipe(ctx, r.ID))
	_, err = svc.ListComments(ctx, r.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.Equal(t, []string{
		EventRecipeCreated, EventCommentCreated, EventCommentDeleted, EventRecipeDeleted,
	}, n.kinds())
}

func TestNilNotifier(t *testing.T) {
	svc := NewService(testutil.TestDB(t), nil)
	_, err := svc.CreateRecipe(context.Background(), toastInput())
	require.NoError(t, err)
}
