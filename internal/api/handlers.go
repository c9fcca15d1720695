package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/recipebox/internal/recipeservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *recipeservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *recipeservice.Service) *Handler {
	return &Handler{svc: svc}
}

// LikesResponse is returned after a like.
type LikesResponse struct {
	Likes int64 `json:"likes" example:"2" validate:"required"`
}

// ListRecipes handles GET /api/recipes.
//
//	@Summary		List all recipes in insertion order
//	@Tags			recipes
//	@Produce		json
//	@Success		200	{array}		models.Recipe
//	@Failure		500	{object}	errResponse
//	@Router			/recipes [get]
func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.svc.ListRecipes(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// GetRecipe handles GET /api/recipes/{id}.
//
//	@Summary		Get a single recipe
//	@Tags			recipes
//	@Produce		json
//	@Param			id	path		string	true	"Recipe ID"
//	@Success		200	{object}	models.Recipe
//	@Failure		404	{object}	errResponse
//	@Router			/recipes/{id} [get]
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.svc.GetRecipe(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

// CreateRecipe handles POST /api/recipes.
//
//	@Summary		Create a recipe
//	@Tags			recipes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		recipeservice.CreateRecipeInput	true	"Recipe to create"
//	@Success		201		{object}	models.Recipe
//	@Failure		400		{object}	errResponse
//	@Router			/recipes [post]
func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req recipeservice.CreateRecipeInput
	if !decodeJSON(w, r, &req) {
		return
	}
	recipe, err := h.svc.CreateRecipe(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, recipe)
}

// UpdateRecipe handles PUT /api/recipes/{id}.
//
//	@Summary		Replace the text fields of a recipe
//	@Tags			recipes
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Recipe ID"
//	@Param			body	body		recipeservice.UpdateRecipeInput	true	"Updated fields"
//	@Success		200		{object}	models.Recipe
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Router			/recipes/{id} [put]
func (h *Handler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	var req recipeservice.UpdateRecipeInput
	if !decodeJSON(w, r, &req) {
		return
	}
	recipe, err := h.svc.UpdateRecipe(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

// DeleteRecipe handles DELETE /api/recipes/{id}.
//
//	@Summary		Delete a recipe and its comments
//	@Tags			recipes
//	@Param			id	path	string	true	"Recipe ID"
//	@Success		204	"Recipe deleted"
//	@Failure		404	{object}	errResponse
//	@Router			/recipes/{id} [delete]
func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteRecipe(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LikeRecipe handles POST /api/recipes/{id}/like.
//
//	@Summary		Add one like to a recipe
//	@Tags			recipes
//	@Produce		json
//	@Param			id	path		string	true	"Recipe ID"
//	@Success		200	{object}	LikesResponse
//	@Failure		404	{object}	errResponse
//	@Router			/recipes/{id}/like [post]
func (h *Handler) LikeRecipe(w http.ResponseWriter, r *http.Request) {
	likes, err := h.svc.LikeRecipe(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, LikesResponse{Likes: likes})
}

// RecipeImage handles GET /api/recipes/{id}/image.
//
//	@Summary		Serve the decoded recipe image
//	@Tags			recipes
//	@Produce		png,jpeg,gif,webp
//	@Param			id	path	string	true	"Recipe ID"
//	@Success		200	"Image bytes"
//	@Failure		404	{object}	errResponse
//	@Router			/recipes/{id}/image [get]
func (h *Handler) RecipeImage(w http.ResponseWriter, r *http.Request) {
	img, err := h.svc.RecipeImage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", img.MediaType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Data)
}

// ListComments handles GET /api/recipes/{id}/comments.
//
//	@Summary		List comments of a recipe in creation order
//	@Tags			comments
//	@Produce		json
//	@Param			id	path		string	true	"Recipe ID"
//	@Success		200	{array}		models.Comment
//	@Failure		404	{object}	errResponse
//	@Router			/recipes/{id}/comments [get]
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.svc.ListComments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// CreateComment handles POST /api/recipes/{id}/comments.
//
//	@Summary		Add a comment to a recipe
//	@Tags			comments
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Recipe ID"
//	@Param			body	body		recipeservice.CreateCommentInput	true	"Comment"
//	@Success		201		{object}	models.Comment
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Router			/recipes/{id}/comments [post]
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req recipeservice.CreateCommentInput
	if !decodeJSON(w, r, &req) {
		return
	}
	comment, err := h.svc.CreateComment(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// DeleteComment handles DELETE /api/recipes/{id}/comments/{commentID}.
//
//	@Summary		Delete a comment
//	@Tags			comments
//	@Param			id			path	string	true	"Recipe ID"
//	@Param			commentID	path	string	true	"Comment ID"
//	@Success		204			"Comment deleted"
//	@Failure		404			{object}	errResponse
//	@Router			/recipes/{id}/comments/{commentID} [delete]
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteComment(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "commentID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
