/* store.go
 * Contains the store struct and NewStore function. The methods for this package are split by collection: brackets.go
 * holds the direct elimination tableaux and scores.go the discipline points of every athlete
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when the requested document does not exist
	ErrNotFound = errors.New("not found")

	// ErrVersionConflict is returned when a bracket was changed by someone else since it was loaded
	ErrVersionConflict = errors.New("bracket was modified concurrently")

	// ErrBracketExists is returned when a bracket is created for an event that already has one
	ErrBracketExists = errors.New("bracket already exists for event")
)

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Logger      *slog.Logger
	Collections struct {
		Brackets *mongo.Collection
		Scores   *mongo.Collection
	}
}

// NewStore connects to MongoDB and sets up the collections.
// Preconditions: Receives a context bounding the connection attempt, the database name, the connection uri and a logger
// Postconditions: Returns a pointer to the Store, or an error if the name is empty or the connection fails
func NewStore(ctx context.Context, dbName string, mongoURI string, logger *slog.Logger) (*Store, error) {
	if dbName == "" {
		return nil, fmt.Errorf("database name cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	db := client.Database(dbName)

	s := &Store{
		Client:   client,
		Database: db,
		Logger:   logger.With(slog.String("component", "store"), slog.String("database", dbName)),
	}
	s.Collections.Brackets = db.Collection("brackets")
	s.Collections.Scores = db.Collection("scores")
	return s, nil
}

// EnsureIndexes creates the unique indexes the store relies on: one bracket per event, one score per event, athlete
// and discipline
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.Collections.Brackets.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "eventid", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create bracket index: %w", err)
	}

	_, err = s.Collections.Scores.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "eventid", Value: 1}, {Key: "athleteid", Value: 1}, {Key: "discipline", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create score index: %w", err)
	}
	return nil
}

// Close disconnects the client
func (s *Store) Close(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Disconnect(ctx)
}
