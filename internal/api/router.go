package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/recipebox/internal/recipeservice"
)

// maxBodyBytes caps request bodies; inline images make recipes large.
const maxBodyBytes = 10 << 20

// NewRouter creates a chi router with all API routes mounted.
// events, if non-nil, is mounted at GET /events.
func NewRouter(svc *recipeservice.Service, events http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(LimitBody(maxBodyBytes))
	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", h.ListRecipes)
		r.Post("/", h.CreateRecipe)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetRecipe)
			r.Put("/", h.UpdateRecipe)
			r.Delete("/", h.DeleteRecipe)
			r.Get("/image", h.RecipeImage)
			r.Post("/like", h.LikeRecipe)

			r.Get("/comments", h.ListComments)
			r.Post("/comments", h.CreateComment)
			r.Delete("/comments/{commentID}", h.DeleteComment)
		})
	})

	if events != nil {
		r.Get("/events", events.ServeHTTP)
	}

	return r
}
