package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	RecipeCollection   *mongo.Collection
	BookmarkCollection *mongo.Collection
	UserCollection     *mongo.Collection

	Client *mongo.Client
)

// Connect establishes the MongoDB connection, pings the deployment and
// initializes the collections and indexes.
func Connect(ctx context.Context, uri, dbName string) error {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return err
	}

	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return err
	}

	Client = client
	database := client.Database(dbName)
	RecipeCollection = database.Collection("recipes")
	BookmarkCollection = database.Collection("bookmarks")
	UserCollection = database.Collection("users")

	return EnsureIndexes(ctx)
}

// EnsureIndexes creates the unique indexes that back insert-if-absent:
// a duplicate-key error on insert is the "already exists" signal, so no
// racy existence check is needed before writing.
func EnsureIndexes(ctx context.Context) error {
	_, err := BookmarkCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "recipeId", Value: 1}, {Key: "userEmail", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func Disconnect(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
