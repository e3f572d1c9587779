package bookmarks

import (
	"encoding/json"
	"net/http"

	"savorly/db"
	"savorly/models"
	"savorly/mq"
	"savorly/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create a bookmark. The body is the denormalized snapshot of the recipe
// as the client saw it. The unique (recipeId, userEmail) index makes the
// insert the existence check: a duplicate key is the 409.
func CreateBookmark(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var bm models.Bookmark
	if err := json.NewDecoder(r.Body).Decode(&bm); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if bm.RecipeID == "" || bm.UserEmail == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if requester := utils.GetUserEmailFromContext(r.Context()); requester != "" {
		if requester != bm.UserEmail {
			utils.RespondWithError(w, http.StatusForbidden, "Cannot bookmark on behalf of another user")
			return
		}
		// The snapshot's createdBy is client-supplied; the ownership check
		// has to come from the live recipe.
		owner, err := recipeOwner(r, bm.RecipeID)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to bookmark recipe")
			return
		}
		if owner != "" && owner == requester {
			utils.RespondWithError(w, http.StatusForbidden, "Cannot bookmark your own recipe")
			return
		}
	}

	bm.ID = primitive.NewObjectID()
	if _, err := db.BookmarkCollection.InsertOne(r.Context(), bm); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "Recipe already bookmarked")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to bookmark recipe")
		return
	}

	mq.Emit("recipe-bookmarked", mq.Index{EntityType: "bookmark", Method: "POST", EntityID: bm.RecipeID, By: bm.UserEmail})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"acknowledged": true, "insertedId": bm.ID.Hex()})
}

// recipeOwner resolves the live recipe's createdBy. A malformed or unknown
// recipeId resolves to no owner and the insert proceeds as it always did.
func recipeOwner(r *http.Request, recipeID string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return "", nil
	}

	var doc struct {
		CreatedBy string `bson:"createdBy"`
	}
	err = db.RecipeCollection.FindOne(
		r.Context(),
		bson.M{"_id": oid},
		options.FindOne().SetProjection(bson.M{"createdBy": 1}),
	).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return doc.CreatedBy, nil
}

// Check whether a (recipe, user) pair is bookmarked.
func CheckBookmark(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := r.URL.Query().Get("user")
	recipeID := r.URL.Query().Get("recipeId")

	if user == "" || recipeID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing query parameters")
		return
	}

	err := db.BookmarkCollection.FindOne(
		r.Context(),
		bson.M{"recipeId": recipeID, "userEmail": user},
		options.FindOne().SetProjection(bson.M{"_id": 1}),
	).Err()
	if err == mongo.ErrNoDocuments {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"bookmarked": false})
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check bookmark")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"bookmarked": true})
}

// Get all bookmarks saved by one user.
func GetUserBookmarks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email is required")
		return
	}

	ctx := r.Context()
	cursor, err := db.BookmarkCollection.Find(ctx, bson.M{"userEmail": email})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookmarks")
		return
	}
	defer cursor.Close(ctx)

	var bookmarks []models.Bookmark
	if err = cursor.All(ctx, &bookmarks); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookmarks")
		return
	}
	if len(bookmarks) == 0 {
		bookmarks = []models.Bookmark{}
	}

	utils.RespondWithJSON(w, http.StatusOK, bookmarks)
}
