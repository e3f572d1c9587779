package routes

import (
	"net/http"

	"savorly/bookmarks"
	"savorly/live"
	"savorly/middleware"
	"savorly/ratelim"
	"savorly/recipes"
	"savorly/users"
	"savorly/utils"

	"github.com/julienschmidt/httprouter"
)

// httprouter refuses to mix static and wildcard children under one segment,
// so the fixed paths under /recipes (bookmarks, uploads, top, categories)
// share the :id position and dispatch on its literal value. Recipe ids are
// 24-char hex, so the reserved words can never shadow a real id.

func AddRecipeRoutes(router *httprouter.Router) {
	router.GET("/recipes", ratelim.RateLimit(recipes.GetRecipes))
	router.POST("/recipes", middleware.OptionalAuth(recipes.CreateRecipe))

	router.GET("/recipes/:id", ratelim.RateLimit(getRecipesSubtree))
	router.POST("/recipes/:id", middleware.Authenticate(postRecipesSubtree))
	router.PUT("/recipes/:id", middleware.Authenticate(recipes.UpdateRecipe))
	router.DELETE("/recipes/:id", middleware.Authenticate(recipes.DeleteRecipe))

	router.PATCH("/recipes/:id/like", middleware.Authenticate(recipes.LikeRecipe))
	router.GET("/recipes/:id/liked", ratelim.RateLimit(getTopLiked))
	router.GET("/recipes/:id/check", ratelim.RateLimit(getBookmarkCheck))
}

func AddUserRoutes(router *httprouter.Router) {
	router.GET("/users", ratelim.RateLimit(users.GetUserByEmail))
	router.GET("/users/all", ratelim.RateLimit(users.GetAllUsers))
	router.POST("/users", users.CreateUser)
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/ws/activity", live.WebSocketHandler(hub))
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func getRecipesSubtree(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	switch ps.ByName("id") {
	case "bookmarks":
		bookmarks.GetUserBookmarks(w, r, ps)
	case "categories":
		recipes.GetCategories(w, r, ps)
	default:
		recipes.GetRecipe(w, r, ps)
	}
}

func postRecipesSubtree(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	switch ps.ByName("id") {
	case "bookmarks":
		bookmarks.CreateBookmark(w, r, ps)
	case "uploads":
		utils.UploadImages(w, r, ps)
	default:
		http.NotFound(w, r)
	}
}

// GET /recipes/top/liked
func getTopLiked(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("id") != "top" {
		http.NotFound(w, r)
		return
	}
	recipes.GetTopLiked(w, r, ps)
}

// GET /recipes/bookmarks/check
func getBookmarkCheck(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("id") != "bookmarks" {
		http.NotFound(w, r)
		return
	}
	bookmarks.CheckBookmark(w, r, ps)
}
