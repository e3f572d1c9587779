package recipes

import (
	"encoding/json"
	"net/http"
	"time"

	"savorly/db"
	"savorly/models"
	"savorly/mq"
	"savorly/rdx"
	"savorly/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	topLikedCacheKey = "recipes:top_liked"
	topLikedCacheTTL = 2 * time.Hour
	topLikedCount    = 6
)

// Get all recipes, or only those created by ?email=
func GetRecipes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	query := bson.M{}
	if email := r.URL.Query().Get("email"); email != "" {
		query["createdBy"] = email
	}

	cursor, err := db.RecipeCollection.Find(ctx, query)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch recipes")
		return
	}
	defer cursor.Close(ctx)

	var recipes []models.Recipe
	if err = cursor.All(ctx, &recipes); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch recipes")
		return
	}

	if len(recipes) == 0 {
		recipes = []models.Recipe{}
	}

	utils.RespondWithJSON(w, http.StatusOK, recipes)
}

// Get one recipe. A malformed id is a 400, a well-formed id with no
// document behind it is a 404.
func GetRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe ID")
		return
	}

	var recipe models.Recipe
	err = db.RecipeCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&recipe)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch recipe")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, recipe)
}

// Create a new recipe. The body is stored as submitted; only the identity
// fields are owned by the server: a fresh id, a zero like counter and
// createdBy taken from the authenticated identity when one is present.
func CreateRecipe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var recipe models.Recipe
	if err := json.NewDecoder(r.Body).Decode(&recipe); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	recipe.ID = primitive.NewObjectID()
	recipe.Likes = 0
	if email := utils.GetUserEmailFromContext(r.Context()); email != "" {
		recipe.CreatedBy = email
	} else if recipe.CreatedBy == "" {
		recipe.CreatedBy = "Anonymous"
	}

	if _, err := db.RecipeCollection.InsertOne(r.Context(), recipe); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create recipe")
		return
	}

	invalidateTopLiked(r)
	mq.Emit("recipe-created", mq.Index{EntityType: "recipe", Method: "POST", EntityID: recipe.ID.Hex(), By: recipe.CreatedBy})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"acknowledged": true, "insertedId": recipe.ID.Hex()})
}

// Update a recipe. Shallow merge, last write wins. Owner only; the like
// counter and ownership fields cannot be set through an edit.
func UpdateRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe ID")
		return
	}

	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	delete(patch, "_id")
	delete(patch, "likes")
	delete(patch, "createdBy")
	if len(patch) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	owner, err := recipeOwner(r, id)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update recipe")
		return
	}
	if owner != utils.GetUserEmailFromContext(r.Context()) {
		utils.RespondWithError(w, http.StatusForbidden, "Only the recipe owner can update it")
		return
	}

	res, err := db.RecipeCollection.UpdateOne(r.Context(), bson.M{"_id": id}, bson.M{"$set": patch})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update recipe")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	invalidateTopLiked(r)
	mq.Emit("recipe-updated", mq.Index{EntityType: "recipe", Method: "PUT", EntityID: id.Hex(), By: owner})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Recipe updated successfully"})
}

// Delete a recipe. Owner only.
func DeleteRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe ID")
		return
	}

	requester := utils.GetUserEmailFromContext(r.Context())
	owner, err := recipeOwner(r, id)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete recipe")
		return
	}
	if owner != requester {
		utils.RespondWithError(w, http.StatusForbidden, "Only the recipe owner can delete it")
		return
	}

	res, err := db.RecipeCollection.DeleteOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete recipe")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	invalidateTopLiked(r)
	mq.Emit("recipe-deleted", mq.Index{EntityType: "recipe", Method: "DELETE", EntityID: id.Hex(), By: requester})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Recipe deleted successfully"})
}

// Like a recipe: a single atomic $inc, never read-modify-write. A
// well-formed id with no document behind it is not an error here; the ack
// carries zero counts and the caller decides what that means.
func LikeRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe ID")
		return
	}

	requester := utils.GetUserEmailFromContext(r.Context())
	owner, err := recipeOwner(r, id)
	if err == nil && owner == requester {
		utils.RespondWithError(w, http.StatusForbidden, "Cannot like your own recipe")
		return
	}
	if err != nil && err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to like recipe")
		return
	}

	res, err := db.RecipeCollection.UpdateOne(r.Context(), bson.M{"_id": id}, bson.M{"$inc": bson.M{"likes": 1}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to like recipe")
		return
	}

	invalidateTopLiked(r)
	if res.ModifiedCount > 0 {
		mq.Emit("recipe-liked", mq.Index{EntityType: "recipe", Method: "PATCH", EntityID: id.Hex(), By: requester})
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"acknowledged":  true,
		"matchedCount":  res.MatchedCount,
		"modifiedCount": res.ModifiedCount,
	})
}

// Get the six most liked recipes, cached in Redis. Every recipe mutation
// deletes the cache key, so reads never serve a stale ranking.
func GetTopLiked(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var recipes []models.Recipe
	if rdx.Conn != nil {
		if val, err := rdx.Conn.Get(ctx, topLikedCacheKey).Result(); err == nil && val != "" {
			if err := json.Unmarshal([]byte(val), &recipes); err == nil {
				utils.RespondWithJSON(w, http.StatusOK, recipes)
				return
			}
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "likes", Value: -1}}).
		SetLimit(topLikedCount)

	cursor, err := db.RecipeCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch top liked recipes")
		return
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &recipes); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch top liked recipes")
		return
	}
	if len(recipes) == 0 {
		recipes = []models.Recipe{}
	}

	if rdx.Conn != nil {
		if jsonBytes, err := json.Marshal(recipes); err == nil {
			_ = rdx.Conn.Set(ctx, topLikedCacheKey, jsonBytes, topLikedCacheTTL).Err()
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, recipes)
}

// GetCategories serves the category vocabulary for form rendering.
func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, models.Categories)
}

func recipeOwner(r *http.Request, id primitive.ObjectID) (string, error) {
	var doc struct {
		CreatedBy string `bson:"createdBy"`
	}
	err := db.RecipeCollection.FindOne(
		r.Context(),
		bson.M{"_id": id},
		options.FindOne().SetProjection(bson.M{"createdBy": 1}),
	).Decode(&doc)
	return doc.CreatedBy, err
}

func invalidateTopLiked(r *http.Request) {
	if rdx.Conn != nil {
		_ = rdx.Conn.Del(r.Context(), topLikedCacheKey).Err()
	}
}
