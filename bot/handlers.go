/* handlers.go
 * Contains testable handler methods that accept the DiscordSession interface
 */

package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pentathlon-scorer/api/api"
	"pentathlon-scorer/api/bracket"
	"pentathlon-scorer/api/logic"
	"pentathlon-scorer/api/points"
	"pentathlon-scorer/api/shared"

	"github.com/bwmarrin/discordgo"
)

// commandTimeout bounds the store calls of a single command
const commandTimeout = 10 * time.Second

// helpMessageHandler handles the $help command
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("Pentathlon Scorer\n")
	res.WriteString("Names that contain spaces need to be wrapped in \" (e.g. \"Anna Berg\"). There is fuzzy matching on names\n")
	res.WriteString("`$seed event name1 ... nameN`: creates the fencing bracket with athletes listed in seed order. ")
	res.WriteString("Use `Name:victories:scored:received` for every athlete to seed from the ranking round instead\n")
	res.WriteString("`$bracket event`: shows every match of the bracket\n")
	res.WriteString("`$pending event`: shows the matches waiting for a result\n")
	res.WriteString("`$result event match winner [15-12]`: records or corrects a match result, the score is slot one first\n")
	res.WriteString("`$placements event`: shows the final ranks once the final is decided\n")
	res.WriteString("`$points discipline key=value ...`: calculates points without storing them\n")
	res.WriteString("`$score event name discipline key=value ...`: calculates and stores an athlete's points\n")
	res.WriteString("Disciplines and options:\n")
	for _, d := range points.Disciplines {
		res.WriteString(fmt.Sprintf("- %s (%s): %s\n", d.Title(), d, strings.Join(optionKeys[d], ", ")))
	}
	res.WriteString("Times are seconds or m:ss.hh, category is Senior, Junior, U17, U15 or Masters\n")
	res.WriteString("`$standings event`: shows total points per athlete\n")
	res.WriteString("`$startlist event`: shows the laser run handicap start\n")
	b.reply(session, message, res.String())
}

// eventArg returns the event id every event command starts with
func eventArg(args []string, command string) (string, error) {
	if len(args) == 0 {
		return "", usage("%s needs an event id", command)
	}
	return args[0], nil
}

// seedHandler handles the $seed command
func (b *Bot) seedHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate, user shared.User) {
	args, err := splitArgs(message.Content)
	if err == nil && len(args) < 2 {
		err = usage("$seed needs an event id and at least one athlete")
	}
	if err != nil {
		b.reply(session, message, b.userMessage("$seed", err))
		return
	}
	eventID, names := args[0], args[1:]

	ranked := 0
	for _, n := range names {
		if isRankingToken(n) {
			ranked++
		}
	}

	var created bracket.Bracket
	switch ranked {
	case 0:
		created, err = b.APIPtr.CreateBracket(ctx, user, eventID, api.SeedsFromNames(names))
	case len(names):
		entries := make([]bracket.RankingEntry, len(names))
		for i, n := range names {
			if entries[i], err = parseRankingToken(n); err != nil {
				break
			}
		}
		if err == nil {
			created, err = b.APIPtr.CreateBracketFromRanking(ctx, user, eventID, entries)
		}
	default:
		err = usage("either every athlete has ranking results or none do")
	}
	if err != nil {
		b.reply(session, message, b.userMessage("$seed", err))
		return
	}

	b.reply(session, message, fmt.Sprintf("Bracket created for %s\n%s", eventID, logic.FormatBracket(created)))
}

// bracketHandler handles the $bracket command
func (b *Bot) bracketHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	args, err := splitArgs(message.Content)
	if err != nil {
		b.reply(session, message, b.userMessage("$bracket", err))
		return
	}
	eventID, err := eventArg(args, "$bracket")
	if err != nil {
		b.reply(session, message, b.userMessage("$bracket", err))
		return
	}

	current, err := b.APIPtr.GetBracket(ctx, eventID)
	if err != nil {
		b.reply(session, message, b.userMessage("$bracket", err))
		return
	}
	b.reply(session, message, logic.FormatBracket(current))
}

// pendingHandler handles the $pending command
func (b *Bot) pendingHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	args, err := splitArgs(message.Content)
	if err != nil {
		b.reply(session, message, b.userMessage("$pending", err))
		return
	}
	eventID, err := eventArg(args, "$pending")
	if err != nil {
		b.reply(session, message, b.userMessage("$pending", err))
		return
	}

	pending, err := b.APIPtr.PendingMatches(ctx, eventID)
	if err != nil {
		b.reply(session, message, b.userMessage("$pending", err))
		return
	}
	b.reply(session, message, logic.FormatPending(pending))
}

// resultHandler handles the $result command
func (b *Bot) resultHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate, user shared.User) {
	args, err := splitArgs(message.Content)
	if err == nil && (len(args) < 3 || len(args) > 4) {
		err = usage("$result needs an event id, a match id, the winner and optionally the score")
	}
	if err != nil {
		b.reply(session, message, b.userMessage("$result", err))
		return
	}
	eventID, matchID, winnerName := args[0], strings.ToUpper(args[1]), args[2]

	result := bracket.MatchResult{MatchID: matchID}
	if len(args) == 4 {
		if result.Score1, result.Score2, err = parseBoutScore(args[3]); err != nil {
			b.reply(session, message, b.userMessage("$result", err))
			return
		}
	}

	winner, err := b.APIPtr.ResolveAthlete(ctx, eventID, winnerName)
	if err != nil {
		b.reply(session, message, b.userMessage("$result", err))
		return
	}
	result.WinnerID = winner.AthleteID

	updated, err := b.APIPtr.RecordResult(ctx, user, eventID, result)
	if err != nil {
		b.reply(session, message, b.userMessage("$result", err))
		return
	}

	res := fmt.Sprintf("%s won %s %d-%d", winner.DisplayName, matchID, result.Score1, result.Score2)
	if updated.Placements != nil {
		res += "\n" + logic.FormatPlacements(updated.Placements, athleteNames(updated))
	}
	b.reply(session, message, res)
}

// athleteNames maps athlete ids to display names for a bracket
func athleteNames(b bracket.Bracket) map[string]string {
	names := make(map[string]string)
	for _, s := range logic.Participants(b) {
		names[s.AthleteID] = s.DisplayName
	}
	return names
}

// placementsHandler handles the $placements command
func (b *Bot) placementsHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	args, err := splitArgs(message.Content)
	if err != nil {
		b.reply(session, message, b.userMessage("$placements", err))
		return
	}
	eventID, err := eventArg(args, "$placements")
	if err != nil {
		b.reply(session, message, b.userMessage("$placements", err))
		return
	}

	placements, err := b.APIPtr.GetPlacements(ctx, eventID)
	if err != nil {
		b.reply(session, message, b.userMessage("$placements", err))
		return
	}
	current, err := b.APIPtr.GetBracket(ctx, eventID)
	if err != nil {
		b.reply(session, message, b.userMessage("$placements", err))
		return
	}
	b.reply(session, message, logic.FormatPlacements(placements, athleteNames(current)))
}

// pointsHandler handles the $points command. Nothing is stored
func (b *Bot) pointsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, err := splitArgs(message.Content)
	if err == nil && len(args) == 0 {
		err = usage("$points needs a discipline")
	}
	if err != nil {
		b.reply(session, message, b.userMessage("$points", err))
		return
	}

	discipline, err := points.ParseDiscipline(args[0])
	if err != nil {
		b.reply(session, message, b.userMessage("$points", err))
		return
	}
	entry, err := buildScoreEntry(discipline, args[1:])
	if err != nil {
		b.reply(session, message, b.userMessage("$points", err))
		return
	}
	p, err := api.CalculatePoints(entry)
	if err != nil {
		b.reply(session, message, b.userMessage("$points", err))
		return
	}
	b.reply(session, message, fmt.Sprintf("%s: %d points", discipline.Title(), p))
}

// scoreHandler handles the $score command
func (b *Bot) scoreHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate, user shared.User) {
	args, err := splitArgs(message.Content)
	if err == nil && len(args) < 3 {
		err = usage("$score needs an event id, an athlete and a discipline")
	}
	if err != nil {
		b.reply(session, message, b.userMessage("$score", err))
		return
	}
	eventID, name := args[0], args[1]

	discipline, err := points.ParseDiscipline(args[2])
	if err != nil {
		b.reply(session, message, b.userMessage("$score", err))
		return
	}
	entry, err := buildScoreEntry(discipline, args[3:])
	if err != nil {
		b.reply(session, message, b.userMessage("$score", err))
		return
	}
	entry.DisplayName = name

	p, err := b.APIPtr.RecordScore(ctx, user, eventID, entry)
	if err != nil {
		b.reply(session, message, b.userMessage("$score", err))
		return
	}
	b.reply(session, message, fmt.Sprintf("Stored %d points for %s in %s", p, name, discipline.Title()))
}

// standingsHandler handles the $standings command
func (b *Bot) standingsHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	args, err := splitArgs(message.Content)
	if err != nil {
		b.reply(session, message, b.userMessage("$standings", err))
		return
	}
	eventID, err := eventArg(args, "$standings")
	if err != nil {
		b.reply(session, message, b.userMessage("$standings", err))
		return
	}

	standings, err := b.APIPtr.GetStandings(ctx, eventID)
	if err != nil {
		b.reply(session, message, b.userMessage("$standings", err))
		return
	}
	b.reply(session, message, logic.FormatStandings(standings))
}

// startListHandler handles the $startlist command
func (b *Bot) startListHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	args, err := splitArgs(message.Content)
	if err != nil {
		b.reply(session, message, b.userMessage("$startlist", err))
		return
	}
	eventID, err := eventArg(args, "$startlist")
	if err != nil {
		b.reply(session, message, b.userMessage("$startlist", err))
		return
	}

	starts, err := b.APIPtr.CalculateStartList(ctx, eventID)
	if err != nil {
		b.reply(session, message, b.userMessage("$startlist", err))
		return
	}
	b.reply(session, message, logic.FormatStartList(starts))
}

// newMessageHandler routes messages to appropriate handlers
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	// Prevent bot from responding to its own messages
	if message.Author == nil || message.Author.ID == botUserID {
		return
	}
	if !strings.HasPrefix(message.Content, "$") {
		return
	}
	if !b.allow(message.ChannelID) {
		b.log().Debug("command dropped by rate limit", slog.String("channel_id", message.ChannelID))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	user := shared.User{UserID: message.Author.ID, Username: message.Author.Username}

	// Route to appropriate handler
	switch {
	case startsWith(message.Content, "$help"):
		b.helpMessageHandler(session, message)

	case startsWith(message.Content, "$seed"):
		b.seedHandler(ctx, session, message, user)

	case startsWith(message.Content, "$bracket"):
		b.bracketHandler(ctx, session, message)

	case startsWith(message.Content, "$pending"):
		b.pendingHandler(ctx, session, message)

	case startsWith(message.Content, "$result"):
		b.resultHandler(ctx, session, message, user)

	case startsWith(message.Content, "$placements"):
		b.placementsHandler(ctx, session, message)

	case startsWith(message.Content, "$points"):
		b.pointsHandler(session, message)

	case startsWith(message.Content, "$score"):
		b.scoreHandler(ctx, session, message, user)

	case startsWith(message.Content, "$standings"):
		b.standingsHandler(ctx, session, message)

	case startsWith(message.Content, "$startlist"):
		b.startListHandler(ctx, session, message)
	}
}
