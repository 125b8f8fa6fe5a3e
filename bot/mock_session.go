/* mock_session.go
 * Contains mock implementation of DiscordSession for testing
 */

package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// MockDiscordSession records every reply instead of sending it
type MockDiscordSession struct {
	SentMessages []MockMessage
	// ErrorToReturn makes every send fail
	ErrorToReturn error
}

// MockMessage is a reply captured by MockDiscordSession
type MockMessage struct {
	ChannelID string
	Content   string
}

// ChannelMessageSend implements DiscordSession.ChannelMessageSend
func (m *MockDiscordSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}

	m.SentMessages = append(m.SentMessages, MockMessage{ChannelID: channelID, Content: content})
	return &discordgo.Message{ID: "mock_message_id", ChannelID: channelID, Content: content}, nil
}

// GetLastMessage returns the last message sent, or an empty MockMessage if none
func (m *MockDiscordSession) GetLastMessage() MockMessage {
	if len(m.SentMessages) == 0 {
		return MockMessage{}
	}
	return m.SentMessages[len(m.SentMessages)-1]
}

// Transcript joins every reply, for assertions that span several commands
func (m *MockDiscordSession) Transcript() string {
	parts := make([]string, len(m.SentMessages))
	for i, msg := range m.SentMessages {
		parts[i] = msg.Content
	}
	return strings.Join(parts, "\n---\n")
}

// ClearMessages clears all stored messages
func (m *MockDiscordSession) ClearMessages() {
	m.SentMessages = nil
}

// NewMockDiscordSession creates a new MockDiscordSession for testing
func NewMockDiscordSession() *MockDiscordSession {
	return &MockDiscordSession{SentMessages: make([]MockMessage, 0)}
}
