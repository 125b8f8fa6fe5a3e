/* scores.go
 * Contains the methods for interacting with the scores collection
 */

package store

import (
	"context"
	"fmt"
	"log/slog"

	"pentathlon-scorer/api/points"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StoreScore stores or replaces an athlete's points for one discipline of an event.
// Preconditions: Receives a score with EventID, AthleteID and Discipline set. An empty ID is minted on insert
// Postconditions: The score document for that event, athlete and discipline holds the new points, or an error is returned
func (s *Store) StoreScore(ctx context.Context, score ScoreRecord) error {
	if score.ID == "" {
		score.ID = uuid.NewString()
	}
	if score.RecordedAt.IsZero() {
		score.RecordedAt = now()
	}

	filter := bson.M{
		"eventid":    score.EventID,
		"athleteid":  score.AthleteID,
		"discipline": score.Discipline,
	}
	update := bson.M{
		"$set": bson.M{
			"displayname": score.DisplayName,
			"points":      score.Points,
			"recorded_by": score.RecordedBy,
			"recorded_at": score.RecordedAt,
		},
		"$setOnInsert": bson.M{"_id": score.ID},
	}

	_, err := s.Collections.Scores.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to store score: %w", err)
	}

	s.Logger.Debug("score stored",
		slog.String("event_id", score.EventID),
		slog.String("athlete_id", score.AthleteID),
		slog.String("discipline", string(score.Discipline)),
		slog.Int("points", score.Points),
	)
	return nil
}

// GetScores returns every score recorded for an event, ordered by athlete then discipline. An event without scores
// returns an empty slice
func (s *Store) GetScores(ctx context.Context, eventID string) ([]ScoreRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "athleteid", Value: 1}, {Key: "discipline", Value: 1}})

	cursor, err := s.Collections.Scores.Find(ctx, bson.M{"eventid": eventID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching scores from db: %w", err)
	}

	results := []ScoreRecord{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of scores: %w", err)
	}
	return results, nil
}

// DeleteScores removes every score of one discipline for an event and returns how many were removed
func (s *Store) DeleteScores(ctx context.Context, eventID string, discipline points.Discipline) (int64, error) {
	res, err := s.Collections.Scores.DeleteMany(ctx, bson.M{"eventid": eventID, "discipline": discipline})
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s scores: %w", discipline, err)
	}

	s.Logger.Debug("scores deleted",
		slog.String("event_id", eventID),
		slog.String("discipline", string(discipline)),
		slog.Int64("deleted", res.DeletedCount),
	)
	return res.DeletedCount, nil
}
