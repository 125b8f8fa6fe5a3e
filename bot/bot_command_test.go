/* bot_command_test.go
 * Contains unit tests for NewBot
 */

package bot

import (
	"testing"

	"pentathlon-scorer/api/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// region NewBot tests

func TestNewBot_Success(t *testing.T) {
	apiPtr := &api.API{Store: api.NewMockStore()}
	bot, err := NewBot("test_token", apiPtr, nil)

	require.NoError(t, err)
	assert.Equal(t, "test_token", bot.BotToken)
	assert.Same(t, apiPtr, bot.APIPtr)
	assert.NotNil(t, bot.Logger)
}

func TestNewBot_EmptyToken(t *testing.T) {
	_, err := NewBot("", &api.API{Store: api.NewMockStore()}, nil)
	assert.ErrorContains(t, err, "botToken is required")
}

// endregion
