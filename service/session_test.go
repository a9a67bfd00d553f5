package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kellybook/models"
)

func TestSessionManager_PutAndGet(t *testing.T) {
	m := NewSessionManager(time.Hour)

	prepared := models.PreparedBet{
		Input:            models.BetInput{Bookmaker: "Bet365", BetName: "Team A"},
		RecommendedStake: 5.5,
	}

	token := m.Put("user-1", "channel-1", prepared)
	require.NotEmpty(t, token)

	session := m.Get(token)
	require.NotNil(t, session)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, "channel-1", session.ChannelID)
	assert.Equal(t, 5.5, session.Prepared.RecommendedStake)

	assert.Nil(t, m.Get("no-such-token"))
}

func TestSessionManager_TokensAreUnique(t *testing.T) {
	m := NewSessionManager(time.Hour)

	a := m.Put("user-1", "channel-1", models.PreparedBet{})
	b := m.Put("user-1", "channel-1", models.PreparedBet{})
	assert.NotEqual(t, a, b)
}

func TestSessionManager_TakeRemoves(t *testing.T) {
	m := NewSessionManager(time.Hour)

	token := m.Put("user-1", "channel-1", models.PreparedBet{})
	require.NotNil(t, m.Take(token))
	assert.Nil(t, m.Take(token))
	assert.Nil(t, m.Get(token))
}

func TestSessionManager_Expiry(t *testing.T) {
	m := NewSessionManager(10 * time.Millisecond)

	token := m.Put("user-1", "channel-1", models.PreparedBet{})
	time.Sleep(25 * time.Millisecond)

	assert.Nil(t, m.Get(token))
	assert.Nil(t, m.Take(token))
}

func TestSessionManager_Cleanup(t *testing.T) {
	m := NewSessionManager(10 * time.Millisecond)

	m.Put("user-1", "channel-1", models.PreparedBet{})
	m.Put("user-2", "channel-1", models.PreparedBet{})
	time.Sleep(25 * time.Millisecond)
	m.cleanup()

	m.mu.RLock()
	defer m.mu.RUnlock()
	assert.Empty(t, m.sessions)
}

func TestSessionManager_Remove(t *testing.T) {
	m := NewSessionManager(time.Hour)

	token := m.Put("user-1", "channel-1", models.PreparedBet{})
	m.Remove(token)
	assert.Nil(t, m.Get(token))
}
