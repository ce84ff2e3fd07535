package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_backend/internal/feature/auth/domain/entity"
	"portfolio_backend/internal/feature/auth/usecase"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

// createTestSession creates a session entity for testing.
func createTestSession(id string, userID uint, expiresIn time.Duration) *entity.Session {
	now := time.Now()
	return &entity.Session{
		ID:        id,
		UserID:    userID,
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
		CreatedAt: now,
		ExpiresAt: now.Add(expiresIn),
	}
}

func TestNewSessionRedis(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.client, "client is nil")
	assert.Equal(t, "session", repo.prefix)
}

func TestSessionRedis_Create(t *testing.T) {
	tests := []struct {
		name    string
		session *entity.Session
		wantErr bool
	}{
		{
			name:    "success: create session",
			session: createTestSession("session-001", 1, 7*24*time.Hour),
			wantErr: false,
		},
		{
			name:    "failure: expired session",
			session: createTestSession("expired-session", 1, -1*time.Hour),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := setupTestRedis(t)
			repo := NewSessionRedis(client, "session")

			err := repo.Create(context.Background(), tt.session)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)

			found, err := repo.FindByID(context.Background(), tt.session.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.session.UserID, found.UserID)
			assert.Equal(t, tt.session.UserAgent, found.UserAgent)
		})
	}
}

func TestSessionRedis_FindByID(t *testing.T) {
	t.Run("session not found", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		_, err := repo.FindByID(context.Background(), "missing")

		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})

	t.Run("expired session is gone", func(t *testing.T) {
		client, mr := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		s := createTestSession("session-ttl", 1, time.Minute)
		require.NoError(t, repo.Create(context.Background(), s))

		// TTL経過をシミュレート
		mr.FastForward(2 * time.Minute)

		_, err := repo.FindByID(context.Background(), "session-ttl")
		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})
}

func TestSessionRedis_Revoke(t *testing.T) {
	t.Run("sets RevokedAt", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		s := createTestSession("session-001", 1, 7*24*time.Hour)
		require.NoError(t, repo.Create(context.Background(), s))

		err := repo.Revoke(context.Background(), "session-001")
		assert.NoError(t, err)

		found, err := repo.FindByID(context.Background(), "session-001")
		require.NoError(t, err)
		assert.True(t, found.IsRevoked(), "session should be revoked")
	})

	t.Run("unknown session", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		err := repo.Revoke(context.Background(), "missing")

		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})
}

func TestSessionRedis_CountByUserID(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, createTestSession("s1", 1, 7*24*time.Hour)))
	require.NoError(t, repo.Create(ctx, createTestSession("s2", 1, 7*24*time.Hour)))
	require.NoError(t, repo.Create(ctx, createTestSession("other", 2, 7*24*time.Hour)))

	// 失効済みセッションはカウントされない
	require.NoError(t, repo.Create(ctx, createTestSession("revoked", 1, 7*24*time.Hour)))
	require.NoError(t, repo.Revoke(ctx, "revoked"))

	count, err := repo.CountByUserID(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestSessionRedis_DeleteOldestByUserID(t *testing.T) {
	t.Run("deletes only the oldest session", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")
		ctx := context.Background()

		now := time.Now()
		oldest := createTestSession("oldest", 1, 7*24*time.Hour)
		oldest.CreatedAt = now.Add(-2 * time.Hour)
		newer := createTestSession("newer", 1, 7*24*time.Hour)
		newer.CreatedAt = now.Add(-time.Hour)

		require.NoError(t, repo.Create(ctx, oldest))
		require.NoError(t, repo.Create(ctx, newer))

		err := repo.DeleteOldestByUserID(ctx, 1)
		assert.NoError(t, err)

		_, err = repo.FindByID(ctx, "oldest")
		assert.ErrorIs(t, err, usecase.ErrSessionNotFound, "oldest session should be deleted")

		_, err = repo.FindByID(ctx, "newer")
		assert.NoError(t, err, "newer session should survive")
	})

	t.Run("no sessions is not an error", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		err := repo.DeleteOldestByUserID(context.Background(), 42)

		assert.NoError(t, err)
	})
}
