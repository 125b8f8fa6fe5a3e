/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 */

package store

import (
	"context"

	"pentathlon-scorer/api/bracket"
	"pentathlon-scorer/api/points"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	InsertBracket(ctx context.Context, b bracket.Bracket) (BracketRecord, error)
	LoadBracket(ctx context.Context, eventID string) (BracketRecord, error)
	SaveBracket(ctx context.Context, b bracket.Bracket, expectedVersion int64) (BracketRecord, error)
	StoreScore(ctx context.Context, score ScoreRecord) error
	GetScores(ctx context.Context, eventID string) ([]ScoreRecord, error)
	DeleteScores(ctx context.Context, eventID string, discipline points.Discipline) (int64, error)
	Close(ctx context.Context) error
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)
