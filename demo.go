/* demo.go
 * A console walkthrough of a full competition against the in memory store. Shows how the api functions work and
 * how they fit together without Discord or MongoDB
 */

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"pentathlon-scorer/api/api"
	"pentathlon-scorer/api/bracket"
	"pentathlon-scorer/api/logic"
	"pentathlon-scorer/api/points"
	"pentathlon-scorer/api/shared"
)

const demoEvent = "demo-senior-men"

var demoRanking = []bracket.RankingEntry{
	{DisplayName: "Anna Berg", Victories: 12, TouchesScored: 60, TouchesReceived: 41},
	{DisplayName: "Ben Carter", Victories: 14, TouchesScored: 66, TouchesReceived: 38},
	{DisplayName: "Cleo Duval", Victories: 9, TouchesScored: 52, TouchesReceived: 50},
	{DisplayName: "Dan Eriksen", Victories: 12, TouchesScored: 58, TouchesReceived: 45},
	{DisplayName: "Eve Fox", Victories: 7, TouchesScored: 44, TouchesReceived: 55},
	{DisplayName: "Gus Hale", Victories: 10, TouchesScored: 50, TouchesReceived: 47},
}

// runDemo plays a whole competition and writes every report to w
func runDemo(ctx context.Context, w io.Writer, logger *slog.Logger) error {
	scorer := &api.API{Store: api.NewMockStore(), Logger: logger}
	user := shared.User{UserID: "demo", Username: "demo"}

	fmt.Fprintln(w, "Seeding the fencing bracket from the ranking round")
	b, err := scorer.CreateBracketFromRanking(ctx, user, demoEvent, demoRanking)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, logic.FormatBracket(b))

	// Higher seed wins every bout
	for {
		pending, err := scorer.PendingMatches(ctx, demoEvent)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			break
		}
		for _, m := range pending {
			result := bracket.MatchResult{MatchID: m.ID, WinnerID: m.Slot1.AthleteID, Score1: 15, Score2: 9 + m.Round}
			if m.Slot2.Seed < m.Slot1.Seed {
				result = bracket.MatchResult{MatchID: m.ID, WinnerID: m.Slot2.AthleteID, Score1: 9 + m.Round, Score2: 15}
			}
			if b, err = scorer.RecordResult(ctx, user, demoEvent, result); err != nil {
				return err
			}
		}
	}
	fmt.Fprintln(w, logic.FormatBracket(b))

	names := make(map[string]string)
	athletes := logic.Participants(b)
	for _, a := range athletes {
		names[a.AthleteID] = a.DisplayName
	}
	fmt.Fprintln(w, logic.FormatPlacements(b.Placements, names))

	for i, a := range athletes {
		entries := []api.ScoreEntry{
			{Discipline: points.Obstacle, Obstacle: points.ObstacleInput{TimeSeconds: 15 + 0.8*float64(i)}},
			{Discipline: points.Swimming, Swimming: points.SwimmingInput{
				TimeHundredths: 13500 + 150*i,
				AgeCategory:    points.Senior,
				Gender:         points.Male,
			}},
			{Discipline: points.Riding, Riding: points.RidingInput{Knockdowns: i % 3, TimeOverSeconds: i}},
		}
		for _, e := range entries {
			e.AthleteID, e.DisplayName = a.AthleteID, a.DisplayName
			if _, err := scorer.RecordScore(ctx, user, demoEvent, e); err != nil {
				return err
			}
		}
	}

	standings, err := scorer.GetStandings(ctx, demoEvent)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, logic.FormatStandings(standings))

	starts, err := scorer.CalculateStartList(ctx, demoEvent)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, logic.FormatStartList(starts))

	// Everyone runs the same time, so the start order is the finish order
	for _, s := range starts {
		delay := float64(s.CappedDelaySeconds)
		_, err := scorer.RecordScore(ctx, user, demoEvent, api.ScoreEntry{
			AthleteID:   s.AthleteID,
			DisplayName: s.DisplayName,
			Discipline:  points.LaserRun,
			LaserRun: points.LaserRunInput{
				FinishTimeSeconds: delay + 760,
				StartDelaySeconds: delay,
				AgeCategory:       points.Senior,
			},
		})
		if err != nil {
			return err
		}
	}

	standings, err = scorer.GetStandings(ctx, demoEvent)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Final results")
	fmt.Fprintln(w, logic.FormatStandings(standings))
	return nil
}
