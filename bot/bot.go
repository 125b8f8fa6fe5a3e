/* bot.go
 * Contains the Bot struct and helpers shared by the command handlers. Requires a discord bot token and an APIPtr,
 * both of which are passed in from main.go
 */

package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"pentathlon-scorer/api/api"
	"pentathlon-scorer/api/bracket"
	"pentathlon-scorer/api/points"
	"pentathlon-scorer/api/store"

	"github.com/bwmarrin/discordgo"
	"github.com/go-andiamo/splitter"
	"golang.org/x/time/rate"
)

const (
	// commandInterval and commandBurst bound how fast a single channel can issue commands
	commandInterval = time.Second
	commandBurst    = 5
)

type Bot struct {
	BotToken string
	APIPtr   *api.API
	Logger   *slog.Logger

	// RateLimit and RateBurst bound commands per channel. Zero values use the defaults above
	RateLimit rate.Limit
	RateBurst int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewBot creates a bot for the given token. A nil logger falls back to slog.Default
func NewBot(botToken string, apiPtr *api.API, logger *slog.Logger) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Bot{
		BotToken: botToken,
		APIPtr:   apiPtr,
		Logger:   logger,
	}, nil
}

func (b *Bot) log() *slog.Logger {
	if b.Logger == nil {
		return slog.Default()
	}
	return b.Logger
}

// allow reports whether a channel may issue another command now
func (b *Bot) allow(channelID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.limiters == nil {
		b.limiters = make(map[string]*rate.Limiter)
	}
	l, ok := b.limiters[channelID]
	if !ok {
		limit, burst := b.RateLimit, b.RateBurst
		if limit == 0 {
			limit = rate.Every(commandInterval)
		}
		if burst == 0 {
			burst = commandBurst
		}
		l = rate.NewLimiter(limit, burst)
		b.limiters[channelID] = l
	}
	return l.Allow()
}

// splitArgs splits a command on spaces, keeping quoted names together, and drops the command itself
// Preconditions: Receives the raw message content
// Postconditions: Returns the arguments after the command, or an error if a quote is left open
func splitArgs(content string) ([]string, error) {
	// splitter instead of strings.Fields so names like "Anna Berg" stay one argument
	spaceSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return nil, err
	}
	parts, err := spaceSplitter.Split(strings.TrimSpace(content))
	if err != nil {
		return nil, fmt.Errorf("could not read arguments: %w", err)
	}

	if len(parts) < 2 {
		return nil, nil
	}

	var args []string
	for _, p := range parts[1:] {
		p = strings.Trim(strings.TrimSpace(p), "\"“”")
		if p != "" {
			args = append(args, p)
		}
	}
	return args, nil
}

// userMessage turns an error into the text shown in the channel. Errors caused by operator input are shown as is,
// anything else is logged and replaced by a generic message
func (b *Bot) userMessage(command string, err error) string {
	var inputErr *points.InputError
	switch {
	case errors.As(err, &inputErr),
		errors.Is(err, points.ErrBoutCountOutOfTable),
		errors.Is(err, bracket.ErrNoSeeds),
		errors.Is(err, bracket.ErrDuplicateAthlete),
		errors.Is(err, bracket.ErrInvalidSeed),
		errors.Is(err, bracket.ErrMatchNotFound),
		errors.Is(err, bracket.ErrWinnerNotInMatch),
		errors.Is(err, bracket.ErrMatchNotReady),
		errors.Is(err, bracket.ErrInvalidScore),
		errors.Is(err, api.ErrUnknownAthlete),
		errors.Is(err, api.ErrAmbiguousAthlete),
		errors.Is(err, api.ErrDuplicateName),
		errors.Is(err, api.ErrBracketIncomplete),
		errors.Is(err, store.ErrBracketExists),
		errors.Is(err, errUsage):
		return fmt.Sprintf("Could not run %s: %s", command, err)
	case errors.Is(err, store.ErrNotFound):
		return fmt.Sprintf("Could not run %s: no bracket exists for that event. Use $seed to create one", command)
	case errors.Is(err, store.ErrVersionConflict):
		return fmt.Sprintf("Could not run %s: the bracket was changed by someone else, please try again", command)
	}

	b.log().Error("command failed", slog.String("command", command), slog.Any("error", err))
	return fmt.Sprintf("An unexpected error occurred running %s", command)
}

// reply sends a message to the channel the command came from
func (b *Bot) reply(session DiscordSession, message *discordgo.MessageCreate, content string) {
	if _, err := session.ChannelMessageSend(message.ChannelID, content); err != nil {
		b.log().Warn("failed to send message", slog.String("channel_id", message.ChannelID), slog.Any("error", err))
	}
}

// Helper function to check if a string starts with a given command
// Preconditions: Receives an input string and a command
// Postconditions: Returns true if the input is the command or the command followed by whitespace
func startsWith(inputString string, command string) bool {
	if !strings.HasPrefix(inputString, command) {
		return false
	}
	rest := inputString[len(command):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\n' || rest[0] == '\t'
}
