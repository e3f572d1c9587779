package users

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
)

// Get one user profile by ?email=
func GetUserByEmail(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email is required")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, user)
}

// Get all user profiles.
func GetAllUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	cursor, err := db.UserCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	if len(users) == 0 {
		users = []models.User{}
	}

	utils.RespondWithJSON(w, http.StatusOK, users)
}

// Create a profile if none exists for the email, otherwise return the
// existing one untouched. Create-if-absent, not upsert: a second sync with
// a different name still answers with the original record. The unique email
// index settles concurrent creates; the loser fetches the winner's document.
func CreateUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var profile models.User
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if profile.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email is required")
		return
	}

	ctx := r.Context()

	var existing models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": profile.Email}).Decode(&existing)
	if err == nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "User already exists", "user": existing})
		return
	}
	if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	profile.ID = primitive.NewObjectID()
	if profile.Bookmarks == nil {
		profile.Bookmarks = []string{}
	}

	if _, err := db.UserCollection.InsertOne(ctx, profile); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if err := db.UserCollection.FindOne(ctx, bson.M{"email": profile.Email}).Decode(&existing); err == nil {
				utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "User already exists", "user": existing})
				return
			}
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	mq.Emit("user-created", mq.Index{EntityType: "user", Method: "POST", EntityID: profile.ID.Hex(), By: profile.Email})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "User created successfully",
		"result":  utils.M{"acknowledged": true, "insertedId": profile.ID.Hex()},
	})
}
