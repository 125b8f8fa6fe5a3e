/* brackets.go
 * Contains the methods for interacting with the brackets collection. Writes are guarded by a version counter so a
 * caller holding a stale snapshot cannot overwrite a newer bracket
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pentathlon-scorer/api/bracket"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// now stamps stored documents. Replaced in tests
var now = func() time.Time {
	return time.Now().UTC()
}

// InsertBracket stores a freshly generated bracket at version 1.
// Preconditions: Receives a bracket whose CompetitionEventID has no stored bracket yet
// Postconditions: Returns the stored record, ErrBracketExists if the event already has a bracket, or another error
func (s *Store) InsertBracket(ctx context.Context, b bracket.Bracket) (BracketRecord, error) {
	doc, err := newBracketDocument(b, 1, now())
	if err != nil {
		return BracketRecord{}, err
	}

	_, err = s.Collections.Brackets.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return BracketRecord{}, fmt.Errorf("%w: %s", ErrBracketExists, b.CompetitionEventID)
		}
		return BracketRecord{}, fmt.Errorf("failed to insert bracket: %w", err)
	}

	s.Logger.Info("bracket stored",
		slog.String("event_id", b.CompetitionEventID),
		slog.Int("participants", b.ParticipantCount),
	)
	return BracketRecord{EventID: doc.EventID, Version: doc.Version, Bracket: b, UpdatedAt: doc.UpdatedAt}, nil
}

// LoadBracket fetches the bracket of an event together with its version.
// Preconditions: Receives the event id
// Postconditions: Returns the decoded record, ErrNotFound if the event has no bracket, or an error if the lookup or
// decoding fails
func (s *Store) LoadBracket(ctx context.Context, eventID string) (BracketRecord, error) {
	var doc bracketDocument
	err := s.Collections.Brackets.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return BracketRecord{}, fmt.Errorf("bracket %s: %w", eventID, ErrNotFound)
		}
		return BracketRecord{}, fmt.Errorf("error fetching bracket from db: %w", err)
	}
	return doc.toRecord()
}

// SaveBracket replaces a stored bracket if nobody else changed it first.
// Preconditions: Receives the new bracket and the version it was derived from
// Postconditions: Stores the bracket at expectedVersion+1 and returns the new record, or ErrVersionConflict when the
// stored version no longer matches (or the bracket is gone)
func (s *Store) SaveBracket(ctx context.Context, b bracket.Bracket, expectedVersion int64) (BracketRecord, error) {
	doc, err := newBracketDocument(b, expectedVersion+1, now())
	if err != nil {
		return BracketRecord{}, err
	}

	filter := bson.M{
		"eventid": b.CompetitionEventID,
		"version": expectedVersion,
	}
	update := bson.M{
		"$set": bson.M{
			"version":    doc.Version,
			"encoded":    doc.Encoded,
			"updated_at": doc.UpdatedAt,
		},
	}

	result, err := s.Collections.Brackets.UpdateOne(ctx, filter, update)
	if err != nil {
		return BracketRecord{}, fmt.Errorf("failed to update bracket: %w", err)
	}
	if result.MatchedCount == 0 {
		s.Logger.Warn("bracket write rejected",
			slog.String("event_id", b.CompetitionEventID),
			slog.Int64("expected_version", expectedVersion),
		)
		return BracketRecord{}, fmt.Errorf("%w: %s at version %d", ErrVersionConflict, b.CompetitionEventID, expectedVersion)
	}

	return BracketRecord{EventID: doc.EventID, Version: doc.Version, Bracket: b, UpdatedAt: doc.UpdatedAt}, nil
}
