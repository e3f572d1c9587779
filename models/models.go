package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Categories is the vocabulary the client offers when tagging a recipe.
// Writes are not validated against it; the list is served to clients for
// form rendering.
var Categories = []string{"Breakfast", "Lunch", "Dinner", "Dessert", "Vegan"}

type Recipe struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Image           string             `bson:"image" json:"image"`
	Title           string             `bson:"title" json:"title"`
	Ingredients     []string           `bson:"ingredients" json:"ingredients"`
	Instructions    string             `bson:"instructions" json:"instructions"`
	CuisineType     string             `bson:"cuisineType" json:"cuisineType"`
	PreparationTime int                `bson:"preparationTime" json:"preparationTime"`
	Categories      []string           `bson:"categories" json:"categories"`
	Likes           int                `bson:"likes" json:"likes"`
	CreatedBy       string             `bson:"createdBy" json:"createdBy"`
}

// Bookmark carries a snapshot of the recipe's display fields taken at
// bookmark time. The snapshot is allowed to drift from the live recipe;
// likes here is likes-at-bookmark-time, not the current counter.
type Bookmark struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	RecipeID        string             `bson:"recipeId" json:"recipeId"`
	UserEmail       string             `bson:"userEmail" json:"userEmail"`
	Image           string             `bson:"image" json:"image"`
	Title           string             `bson:"title" json:"title"`
	Ingredients     []string           `bson:"ingredients" json:"ingredients"`
	Instructions    string             `bson:"instructions" json:"instructions"`
	CuisineType     string             `bson:"cuisineType" json:"cuisineType"`
	PreparationTime int                `bson:"preparationTime" json:"preparationTime"`
	Categories      []string           `bson:"categories" json:"categories"`
	Likes           int                `bson:"likes" json:"likes"`
	CreatedBy       string             `bson:"createdBy" json:"createdBy"`
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	Photo     string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Bio       string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Bookmarks []string           `bson:"bookmarks" json:"bookmarks"`
}
