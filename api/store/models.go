/* models.go
 * This file contains the structs that relate to DB objects and the helpers converting between them and engine types
 */

package store

import (
	"fmt"
	"time"

	"pentathlon-scorer/api/bracket"
	"pentathlon-scorer/api/points"
)

// bracketDocument is the way a bracket is stored in the brackets collection. The tableau itself is kept in its
// string encoding so the document shape never depends on the engine's structs
type bracketDocument struct {
	EventID   string    `bson:"eventid"`
	Version   int64     `bson:"version"`
	Encoded   string    `bson:"encoded"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// BracketRecord is a decoded bracket together with the version it was read at
type BracketRecord struct {
	EventID   string
	Version   int64
	Bracket   bracket.Bracket
	UpdatedAt time.Time
}

// ScoreRecord is the points an athlete earned in one discipline of an event
type ScoreRecord struct {
	ID          string            `bson:"_id,omitempty"`
	EventID     string            `bson:"eventid"`
	AthleteID   string            `bson:"athleteid"`
	DisplayName string            `bson:"displayname"`
	Discipline  points.Discipline `bson:"discipline"`
	Points      int               `bson:"points"`
	RecordedBy  string            `bson:"recorded_by,omitempty"`
	RecordedAt  time.Time         `bson:"recorded_at"`
}

func newBracketDocument(b bracket.Bracket, version int64, now time.Time) (bracketDocument, error) {
	encoded, err := bracket.SerializeBracket(b)
	if err != nil {
		return bracketDocument{}, err
	}
	return bracketDocument{
		EventID:   b.CompetitionEventID,
		Version:   version,
		Encoded:   encoded,
		UpdatedAt: now,
	}, nil
}

// toRecord decodes the stored tableau
func (d bracketDocument) toRecord() (BracketRecord, error) {
	b, err := bracket.DeserializeBracket(d.Encoded)
	if err != nil {
		return BracketRecord{}, fmt.Errorf("stored bracket for %s is unreadable: %w", d.EventID, err)
	}
	return BracketRecord{
		EventID:   d.EventID,
		Version:   d.Version,
		Bracket:   b,
		UpdatedAt: d.UpdatedAt,
	}, nil
}
