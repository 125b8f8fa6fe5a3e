/* test_mocks.go
 * Contains mock structures and interfaces for testing the API package
 */

package api

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"pentathlon-scorer/api/bracket"
	"pentathlon-scorer/api/points"
	"pentathlon-scorer/api/store"
)

// MockStore implements the store Interface in memory for testing
type MockStore struct {
	mu sync.Mutex

	// Storage for mock data
	Brackets map[string]store.BracketRecord
	Scores   []store.ScoreRecord

	// Error injection for testing error paths
	InsertBracketError error
	LoadBracketError   error
	SaveBracketError   error
	StoreScoreError    error
	GetScoresError     error
	DeleteScoresError  error

	// Number of successful writes, for asserting on side effects
	SaveCalls  int
	ScoreCalls int
	Closed     bool
}

// Ensure MockStore implements the store interface
var _ store.Interface = (*MockStore)(nil)

// NewMockStore creates a new empty MockStore
func NewMockStore() *MockStore {
	return &MockStore{
		Brackets: make(map[string]store.BracketRecord),
	}
}

// InsertBracket mock implementation
func (m *MockStore) InsertBracket(ctx context.Context, b bracket.Bracket) (store.BracketRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.InsertBracketError != nil {
		return store.BracketRecord{}, m.InsertBracketError
	}
	if _, ok := m.Brackets[b.CompetitionEventID]; ok {
		return store.BracketRecord{}, fmt.Errorf("%w: %s", store.ErrBracketExists, b.CompetitionEventID)
	}

	record := store.BracketRecord{EventID: b.CompetitionEventID, Version: 1, Bracket: b, UpdatedAt: time.Now().UTC()}
	m.Brackets[b.CompetitionEventID] = record
	return record, nil
}

// LoadBracket mock implementation
func (m *MockStore) LoadBracket(ctx context.Context, eventID string) (store.BracketRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadBracketError != nil {
		return store.BracketRecord{}, m.LoadBracketError
	}
	record, ok := m.Brackets[eventID]
	if !ok {
		return store.BracketRecord{}, fmt.Errorf("%w: bracket for %s", store.ErrNotFound, eventID)
	}
	return record, nil
}

// SaveBracket mock implementation. Mirrors the version check of the real store
func (m *MockStore) SaveBracket(ctx context.Context, b bracket.Bracket, expectedVersion int64) (store.BracketRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveBracketError != nil {
		return store.BracketRecord{}, m.SaveBracketError
	}
	current, ok := m.Brackets[b.CompetitionEventID]
	if !ok || current.Version != expectedVersion {
		return store.BracketRecord{}, fmt.Errorf("%w: %s at version %d", store.ErrVersionConflict, b.CompetitionEventID, expectedVersion)
	}

	record := store.BracketRecord{EventID: b.CompetitionEventID, Version: expectedVersion + 1, Bracket: b, UpdatedAt: time.Now().UTC()}
	m.Brackets[b.CompetitionEventID] = record
	m.SaveCalls++
	return record, nil
}

// StoreScore mock implementation. Replaces an existing score for the same event, athlete and discipline
func (m *MockStore) StoreScore(ctx context.Context, score store.ScoreRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.StoreScoreError != nil {
		return m.StoreScoreError
	}
	m.ScoreCalls++
	for i, s := range m.Scores {
		if s.EventID == score.EventID && s.AthleteID == score.AthleteID && s.Discipline == score.Discipline {
			score.ID = s.ID
			m.Scores[i] = score
			return nil
		}
	}
	if score.ID == "" {
		score.ID = fmt.Sprintf("score-%d", len(m.Scores)+1)
	}
	m.Scores = append(m.Scores, score)
	return nil
}

// GetScores mock implementation
func (m *MockStore) GetScores(ctx context.Context, eventID string) ([]store.ScoreRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetScoresError != nil {
		return nil, m.GetScoresError
	}
	results := []store.ScoreRecord{}
	for _, s := range m.Scores {
		if s.EventID == eventID {
			results = append(results, s)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].AthleteID != results[j].AthleteID {
			return results[i].AthleteID < results[j].AthleteID
		}
		return results[i].Discipline < results[j].Discipline
	})
	return results, nil
}

// DeleteScores mock implementation
func (m *MockStore) DeleteScores(ctx context.Context, eventID string, discipline points.Discipline) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DeleteScoresError != nil {
		return 0, m.DeleteScoresError
	}
	kept := m.Scores[:0]
	var deleted int64
	for _, s := range m.Scores {
		if s.EventID == eventID && s.Discipline == discipline {
			deleted++
			continue
		}
		kept = append(kept, s)
	}
	m.Scores = kept
	return deleted, nil
}

// Close mock implementation
func (m *MockStore) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}
