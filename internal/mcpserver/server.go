// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes recipe tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/recipebox/internal/apperr"
	"github.com/starford/recipebox/internal/recipeservice"
)

// Server wraps the MCP server with recipe tools.
type Server struct {
	mcp *server.MCPServer
	svc *recipeservice.Service
}

// New creates a new MCP server with all recipe tools registered.
func New(svc *recipeservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Recipebox",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_recipes",
		mcp.WithDescription("List all recipes in creation order, without images."),
	), s.listRecipes)

	s.mcp.AddTool(mcp.NewTool("get_recipe",
		mcp.WithDescription("Get one recipe by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Recipe id")),
	), s.getRecipe)

	s.mcp.AddTool(mcp.NewTool("create_recipe",
		mcp.WithDescription("Create a recipe. Title, ingredients and instructions must be non-empty."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Recipe title")),
		mcp.WithString("ingredients", mcp.Required(), mcp.Description("Ingredients, one per line")),
		mcp.WithString("instructions", mcp.Required(), mcp.Description("Preparation instructions")),
		mcp.WithString("image", mcp.Description("Optional data:image/...;base64 URL")),
	), s.createRecipe)

	s.mcp.AddTool(mcp.NewTool("like_recipe",
		mcp.WithDescription("Add one like to a recipe and return the new count."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Recipe id")),
	), s.likeRecipe)

	s.mcp.AddTool(mcp.NewTool("delete_recipe",
		mcp.WithDescription("Delete a recipe and all of its comments."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Recipe id")),
	), s.deleteRecipe)

	s.mcp.AddTool(mcp.NewTool("list_comments",
		mcp.WithDescription("List the comments of a recipe, oldest first."),
		mcp.WithString("recipe_id", mcp.Required(), mcp.Description("Recipe id")),
	), s.listComments)

	s.mcp.AddTool(mcp.NewTool("add_comment",
		mcp.WithDescription("Add a comment to a recipe."),
		mcp.WithString("recipe_id", mcp.Required(), mcp.Description("Recipe id")),
		mcp.WithString("author", mcp.Required(), mcp.Description("Comment author")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Comment text")),
	), s.addComment)

	s.mcp.AddTool(mcp.NewTool("get_recipe_format",
		mcp.WithDescription("Returns the recipe file format accepted by the importer."),
	), s.getRecipeFormat)

	s.mcp.AddResource(
		mcp.NewResource(RecipeFormatURI, "Recipe Format",
			mcp.WithResourceDescription("Markdown and YAML recipe file format."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readRecipeFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// toolError turns a service error into an MCP error result. Storage
// details stay out of the result.
func toolError(err error) *mcp.CallToolResult {
	if errors.Is(err, apperr.ErrStorage) {
		return mcp.NewToolResultError("internal error")
	}
	return mcp.NewToolResultError(err.Error())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listRecipes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recipes, err := s.svc.ListRecipes(ctx)
	if err != nil {
		return toolError(err), nil
	}
	for i := range recipes {
		recipes[i].Image = ""
	}
	return jsonResult(recipes)
}

func (s *Server) getRecipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	r, err := s.svc.GetRecipe(ctx, id)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(r)
}

func (s *Server) createRecipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r, err := s.svc.CreateRecipe(ctx, recipeservice.CreateRecipeInput{
		Title:        req.GetString("title", ""),
		Ingredients:  req.GetString("ingredients", ""),
		Instructions: req.GetString("instructions", ""),
		Image:        req.GetString("image", ""),
	})
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(r)
}

func (s *Server) likeRecipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	likes, err := s.svc.LikeRecipe(ctx, id)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(map[string]int64{"likes": likes})
}

func (s *Server) deleteRecipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.DeleteRecipe(ctx, id); err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %s", id)), nil
}

func (s *Server) listComments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("recipe_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	comments, err := s.svc.ListComments(ctx, id)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(comments)
}

func (s *Server) addComment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("recipe_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c, err := s.svc.CreateComment(ctx, id, recipeservice.CreateCommentInput{
		Author: req.GetString("author", ""),
		Text:   req.GetString("text", ""),
	})
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(c)
}

func (s *Server) getRecipeFormat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(RecipeFormat), nil
}

func (s *Server) readRecipeFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      RecipeFormatURI,
			MIMEType: "text/markdown",
			Text:     RecipeFormat,
		},
	}, nil
}
