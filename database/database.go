package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

type Database struct {
	client       *mongo.Client
	db           *mongo.Database
	blogPostRepo *BlogPostRepo
}

// Connect opens the long-lived client shared by every request. The driver
// connects lazily, so an unreachable server does not fail here.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	return client, nil
}

// New initializes a new Database with each repository sharing one mongo database handle
func New(client *mongo.Client, name string) Database {
	db := client.Database(name)
	return Database{
		client:       client,
		db:           db,
		blogPostRepo: NewBlogPostRepo(db),
	}
}

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

// Name returns the database name.
func (d Database) Name() string {
	return d.db.Name()
}

func (d Database) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

// CollectionNames lists the collections of the database.
func (d Database) CollectionNames(ctx context.Context) ([]string, error) {
	return d.db.ListCollectionNames(ctx, bson.D{})
}

func (d Database) Disconnect(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}
