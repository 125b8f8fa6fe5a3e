/* api.go
 * This file contains the public methods for interacting with this package. Callers should go through these methods
 * rather than the engine and store packages directly: they load and persist state, serialise bracket writes per
 * event and log every change
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"pentathlon-scorer/api/bracket"
	"pentathlon-scorer/api/handicap"
	"pentathlon-scorer/api/logic"
	"pentathlon-scorer/api/points"
	"pentathlon-scorer/api/shared"
	"pentathlon-scorer/api/store"

	"github.com/google/uuid"
)

// API provides methods for running the scoring of a competition
type API struct {
	Store  store.Interface
	Logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewAPI creates a new API instance backed by MongoDB
func NewAPI(ctx context.Context, dbName string, mongoURI string, logger *slog.Logger) (*API, error) {
	if dbName == "" || mongoURI == "" {
		return nil, fmt.Errorf("dbName and mongoURI are required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s, err := store.NewStore(ctx, dbName, mongoURI, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	if err := s.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	return &API{
		Store:  s,
		Logger: logger,
	}, nil
}

func (a *API) log() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}

// lockEvent serialises bracket writes for one event within this process. Writes from other processes are caught by
// the store's version check
func (a *API) lockEvent(eventID string) func() {
	a.mu.Lock()
	if a.locks == nil {
		a.locks = make(map[string]*sync.Mutex)
	}
	l, ok := a.locks[eventID]
	if !ok {
		l = &sync.Mutex{}
		a.locks[eventID] = l
	}
	a.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// SeedsFromNames turns names listed in seed order into seeds, minting an athlete id for each
func SeedsFromNames(names []string) []bracket.Seed {
	seeds := make([]bracket.Seed, len(names))
	for i, name := range names {
		seeds[i] = bracket.Seed{
			AthleteID:   uuid.NewString(),
			Seed:        i + 1,
			DisplayName: name,
		}
	}
	return seeds
}

// CreateBracket generates and stores the direct elimination bracket of an event.
// Preconditions: Receives the operator, the event id and the seeded athletes
// Postconditions: Returns the stored bracket, or an error if the seeds are invalid or the event already has a bracket
func (a *API) CreateBracket(ctx context.Context, user shared.User, eventID string, seeds []bracket.Seed) (bracket.Bracket, error) {
	if eventID == "" {
		return bracket.Bracket{}, fmt.Errorf("event id is required")
	}

	if err := checkDistinctNames(seeds); err != nil {
		return bracket.Bracket{}, err
	}

	b, err := bracket.GenerateBracket(eventID, seeds)
	if err != nil {
		return bracket.Bracket{}, err
	}

	unlock := a.lockEvent(eventID)
	defer unlock()

	if _, err := a.Store.InsertBracket(ctx, b); err != nil {
		return bracket.Bracket{}, err
	}

	a.log().Info("bracket created",
		slog.String("event_id", eventID),
		slog.Int("participants", b.ParticipantCount),
		slog.Int("tableau_size", b.TableauSize),
		slog.String("operator", user.String()),
	)
	return b, nil
}

// checkDistinctNames rejects seed lists where two athletes would answer to the same name on the console
func checkDistinctNames(seeds []bracket.Seed) error {
	seen := make(map[string]bool, len(seeds))
	for _, s := range seeds {
		key := strings.ToLower(strings.TrimSpace(s.DisplayName))
		if seen[key] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, s.DisplayName)
		}
		seen[key] = true
	}
	return nil
}

// CreateBracketFromRanking seeds an event from its ranking round results and stores the bracket. Entries without an
// athlete id get a new one. The caller's slice is left untouched
func (a *API) CreateBracketFromRanking(ctx context.Context, user shared.User, eventID string, entries []bracket.RankingEntry) (bracket.Bracket, error) {
	withIDs := make([]bracket.RankingEntry, len(entries))
	copy(withIDs, entries)
	for i := range withIDs {
		if withIDs[i].AthleteID == "" {
			withIDs[i].AthleteID = uuid.NewString()
		}
	}
	return a.CreateBracket(ctx, user, eventID, bracket.SeedsFromRankingRound(withIDs))
}

// RecordResult records or corrects a match outcome.
// Preconditions: Receives the operator, the event id and the result. The event must have a bracket
// Postconditions: Returns the updated bracket once stored. When the result completes the bracket, every athlete's
// direct elimination points are stored as well. A correction that reopens a completed bracket removes them again. Returns store.ErrVersionConflict if another process changed the
// bracket in the meantime
func (a *API) RecordResult(ctx context.Context, user shared.User, eventID string, result bracket.MatchResult) (bracket.Bracket, error) {
	unlock := a.lockEvent(eventID)
	defer unlock()

	record, err := a.Store.LoadBracket(ctx, eventID)
	if err != nil {
		return bracket.Bracket{}, err
	}

	updated, err := bracket.AdvanceWinner(record.Bracket, result)
	if err != nil {
		return bracket.Bracket{}, err
	}

	if _, err := a.Store.SaveBracket(ctx, updated, record.Version); err != nil {
		return bracket.Bracket{}, err
	}

	a.log().Info("match result recorded",
		slog.String("event_id", eventID),
		slog.String("match_id", result.MatchID),
		slog.String("winner_id", result.WinnerID),
		slog.Int("score1", result.Score1),
		slog.Int("score2", result.Score2),
		slog.String("operator", user.String()),
	)

	switch {
	case len(updated.Placements) > 0:
		if err := a.storePlacementScores(ctx, user, updated); err != nil {
			return updated, fmt.Errorf("bracket saved but placement points failed: %w", err)
		}
	case len(record.Bracket.Placements) > 0:
		// a correction reopened the bracket, so the old placements no longer hold
		deleted, err := a.Store.DeleteScores(ctx, eventID, points.FencingDE)
		if err != nil {
			return updated, fmt.Errorf("bracket saved but clearing placement points failed: %w", err)
		}
		a.log().Info("bracket reopened",
			slog.String("event_id", eventID),
			slog.Int64("placement_scores_removed", deleted),
			slog.String("operator", user.String()),
		)
	}
	return updated, nil
}

// storePlacementScores converts final placements into direct elimination points
func (a *API) storePlacementScores(ctx context.Context, user shared.User, b bracket.Bracket) error {
	for _, athlete := range logic.Participants(b) {
		rank, ok := b.Placements[athlete.AthleteID]
		if !ok {
			continue
		}
		p, err := points.CalculateFencingDE(points.FencingDEInput{Placement: rank})
		if err != nil {
			return err
		}
		err = a.Store.StoreScore(ctx, store.ScoreRecord{
			EventID:     b.CompetitionEventID,
			AthleteID:   athlete.AthleteID,
			DisplayName: athlete.DisplayName,
			Discipline:  points.FencingDE,
			Points:      p,
			RecordedBy:  user.String(),
		})
		if err != nil {
			return err
		}
	}

	a.log().Info("bracket complete", slog.String("event_id", b.CompetitionEventID), slog.Int("placements", len(b.Placements)))
	return nil
}

// GetBracket returns the current bracket of an event
func (a *API) GetBracket(ctx context.Context, eventID string) (bracket.Bracket, error) {
	record, err := a.Store.LoadBracket(ctx, eventID)
	if err != nil {
		return bracket.Bracket{}, err
	}
	return record.Bracket, nil
}

// PendingMatches returns the matches of an event that can be fought now
func (a *API) PendingMatches(ctx context.Context, eventID string) ([]bracket.Match, error) {
	b, err := a.GetBracket(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return bracket.PendingMatches(b), nil
}

// GetPlacements returns the final ranks of a completed bracket, or ErrBracketIncomplete
func (a *API) GetPlacements(ctx context.Context, eventID string) (map[string]int, error) {
	b, err := a.GetBracket(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if b.Placements == nil {
		return nil, fmt.Errorf("%w: %s", ErrBracketIncomplete, eventID)
	}
	return b.Placements, nil
}

// athletes lists the known athletes of an event: bracket participants first, then anyone who only has scores
func (a *API) athletes(ctx context.Context, eventID string) ([]bracket.Slot, error) {
	var known []bracket.Slot
	seen := make(map[string]bool)

	record, err := a.Store.LoadBracket(ctx, eventID)
	switch {
	case err == nil:
		for _, s := range logic.Participants(record.Bracket) {
			seen[s.AthleteID] = true
			known = append(known, s)
		}
	case !errors.Is(err, store.ErrNotFound):
		return nil, err
	}

	scores, err := a.Store.GetScores(ctx, eventID)
	if err != nil {
		return nil, err
	}
	for _, s := range scores {
		if !seen[s.AthleteID] {
			seen[s.AthleteID] = true
			known = append(known, bracket.Slot{AthleteID: s.AthleteID, DisplayName: s.DisplayName})
		}
	}
	return known, nil
}

// ResolveAthlete finds the athlete of an event whose name best matches the input.
// Preconditions: Receives the event id and a name as typed by an operator
// Postconditions: Returns the athlete, ErrUnknownAthlete if nobody matches, or ErrAmbiguousAthlete if the matched
// name belongs to several athletes
func (a *API) ResolveAthlete(ctx context.Context, eventID string, name string) (bracket.Slot, error) {
	if strings.TrimSpace(name) == "" {
		return bracket.Slot{}, fmt.Errorf("%w: empty name", ErrUnknownAthlete)
	}
	known, err := a.athletes(ctx, eventID)
	if err != nil {
		return bracket.Slot{}, err
	}

	// names are matched case-insensitively, so athletes are grouped the same way
	var names []string
	byName := make(map[string][]bracket.Slot, len(known))
	for _, s := range known {
		key := strings.ToLower(s.DisplayName)
		if _, ok := byName[key]; !ok {
			names = append(names, s.DisplayName)
		}
		byName[key] = append(byName[key], s)
	}

	matched, _ := logic.CheckAthleteNames([]string{name}, names)
	if len(matched) == 0 {
		return bracket.Slot{}, fmt.Errorf("%w: %q in %s", ErrUnknownAthlete, name, eventID)
	}
	candidates := byName[strings.ToLower(matched[0])]
	if len(candidates) > 1 {
		return bracket.Slot{}, fmt.Errorf("%w: %q is used by %d athletes in %s", ErrAmbiguousAthlete, matched[0], len(candidates), eventID)
	}
	return candidates[0], nil
}

// RecordScore converts a raw performance into points and stores them.
// Preconditions: Receives the operator, the event id and the entry. An entry without AthleteID is resolved by name,
// and a name matching nobody registers a new athlete
// Postconditions: Returns the points stored, or an error if the input is rejected or storing fails
func (a *API) RecordScore(ctx context.Context, user shared.User, eventID string, entry ScoreEntry) (int, error) {
	p, err := CalculatePoints(entry)
	if err != nil {
		return 0, err
	}

	if entry.AthleteID == "" {
		if strings.TrimSpace(entry.DisplayName) == "" {
			return 0, fmt.Errorf("athlete id or name is required")
		}
		athlete, err := a.ResolveAthlete(ctx, eventID, entry.DisplayName)
		switch {
		case err == nil:
			entry.AthleteID = athlete.AthleteID
			entry.DisplayName = athlete.DisplayName
		case errors.Is(err, ErrUnknownAthlete):
			entry.AthleteID = uuid.NewString()
			a.log().Info("athlete registered", slog.String("event_id", eventID), slog.String("athlete_id", entry.AthleteID), slog.String("name", entry.DisplayName))
		default:
			return 0, err
		}
	}

	err = a.Store.StoreScore(ctx, store.ScoreRecord{
		EventID:     eventID,
		AthleteID:   entry.AthleteID,
		DisplayName: entry.DisplayName,
		Discipline:  entry.Discipline,
		Points:      p,
		RecordedBy:  user.String(),
	})
	if err != nil {
		return 0, err
	}

	a.log().Info("score recorded",
		slog.String("event_id", eventID),
		slog.String("athlete_id", entry.AthleteID),
		slog.String("discipline", string(entry.Discipline)),
		slog.Int("points", p),
		slog.String("operator", user.String()),
	)
	return p, nil
}

// GetStandings totals every athlete's points for an event
func (a *API) GetStandings(ctx context.Context, eventID string) ([]logic.Standing, error) {
	scores, err := a.Store.GetScores(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return logic.BuildStandings(scores), nil
}

// CalculateStartList builds the laser run handicap start from the points of every discipline but the laser run
func (a *API) CalculateStartList(ctx context.Context, eventID string) ([]handicap.Assignment, error) {
	standings, err := a.GetStandings(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return handicap.CalculateHandicapStarts(logic.HandicapInputs(standings)), nil
}

// Close releases the store
func (a *API) Close(ctx context.Context) error {
	return a.Store.Close(ctx)
}
