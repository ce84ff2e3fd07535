package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"portfolio_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	// CreateFunc is called when the Create method is invoked.
	CreateFunc func(ctx context.Context, user *entity.User) error
	// FindByEmailFunc is called when the FindByEmail method is invoked.
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	// FindByIDFunc is called when the FindByID method is invoked.
	FindByIDFunc func(ctx context.Context, id uint) (*entity.User, error)
}

// Create is the mock implementation of the Create method.
func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil // Default: success
}

// FindByEmail is the mock implementation of the FindByEmail method.
func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

// FindByID is the mock implementation of the FindByID method.
func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

// mockSessionRepository is a mock implementation of the SessionRepository interface.
type mockSessionRepository struct {
	CreateFunc               func(ctx context.Context, session *entity.Session) error
	FindByIDFunc             func(ctx context.Context, id string) (*entity.Session, error)
	RevokeFunc               func(ctx context.Context, id string) error
	CountByUserIDFunc        func(ctx context.Context, userID uint) (int64, error)
	DeleteOldestByUserIDFunc func(ctx context.Context, userID uint) error
}

func (m *mockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil
}

func (m *mockSessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrSessionNotFound
}

func (m *mockSessionRepository) Revoke(ctx context.Context, id string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, id)
	}
	return nil
}

func (m *mockSessionRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	if m.CountByUserIDFunc != nil {
		return m.CountByUserIDFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockSessionRepository) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	if m.DeleteOldestByUserIDFunc != nil {
		return m.DeleteOldestByUserIDFunc(ctx, userID)
	}
	return nil
}

// mockJWTGenerator is a mock implementation of the JWTGenerator interface.
type mockJWTGenerator struct {
	// GenerateTokenFunc is called when the GenerateToken method is invoked.
	GenerateTokenFunc func(userID uint, email string) (string, error)
}

// GenerateToken is the mock implementation of the GenerateToken method.
func (m *mockJWTGenerator) GenerateToken(userID uint, email string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email)
	}
	// Default: return a dummy token
	return "mock-jwt-token", nil
}

func TestAuthUsecase_Signup(t *testing.T) {
	t.Run("successful signup", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				if user.Name != "Taro" {
					t.Errorf("expected name 'Taro', got %q", user.Name)
				}
				// Verify that the password is hashed
				if len(user.Password) == 0 || user.Password == "password123" {
					t.Errorf("password is not hashed")
				}
				// Verify that it's a valid bcrypt hash
				if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")); err != nil {
					t.Errorf("invalid bcrypt hash: %v", err)
				}
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockSessionRepository{}, &mockJWTGenerator{})
		err := uc.Signup(context.Background(), "Taro", "test@example.com", "password123")

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("short password is rejected", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				t.Error("Create should not be called for weak password")
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockSessionRepository{}, &mockJWTGenerator{})
		err := uc.Signup(context.Background(), "Taro", "test@example.com", "short")

		if err == nil {
			t.Error("expected error for short password")
		}
	})

	t.Run("repository create failure", func(t *testing.T) {
		expectedErr := errors.New("database error")
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return expectedErr
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockSessionRepository{}, &mockJWTGenerator{})
		err := uc.Signup(context.Background(), "Taro", "test@example.com", "password123")

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error '%v', got: %v", expectedErr, err)
		}
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	// Hashed password for testing
	password := "password123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	testUser := &entity.User{
		ID:       1,
		Name:     "Taro",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}
	client := ClientInfo{UserAgent: "test-agent", IPAddress: "127.0.0.1"}

	t.Run("successful login", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				if email == testUser.Email {
					return testUser, nil
				}
				return nil, ErrUserNotFound
			},
		}
		var createdSession *entity.Session
		mockSessions := &mockSessionRepository{
			CreateFunc: func(ctx context.Context, session *entity.Session) error {
				createdSession = session
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, mockSessions, &mockJWTGenerator{})
		pair, err := uc.Login(context.Background(), testUser.Email, password, client)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pair.AccessToken != "mock-jwt-token" {
			t.Errorf("unexpected access token: %q", pair.AccessToken)
		}
		if len(pair.RefreshToken) != 64 {
			t.Errorf("expected 64-char hex refresh token, got %d chars", len(pair.RefreshToken))
		}
		if pair.ExpiresIn != accessTokenTTLSeconds {
			t.Errorf("expected ExpiresIn %d, got %d", accessTokenTTLSeconds, pair.ExpiresIn)
		}
		if createdSession == nil {
			t.Fatal("session was not persisted")
		}
		if createdSession.UserID != testUser.ID {
			t.Errorf("session has wrong user id: %d", createdSession.UserID)
		}
		if createdSession.UserAgent != client.UserAgent || createdSession.IPAddress != client.IPAddress {
			t.Error("session is missing client info")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return testUser, nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockSessionRepository{}, &mockJWTGenerator{})
		_, err := uc.Login(context.Background(), testUser.Email, "wrong-password", client)

		if err == nil {
			t.Error("expected error for wrong password")
		}
	})

	t.Run("unknown user returns the same generic error", func(t *testing.T) {
		mockRepo := &mockUserRepository{}

		uc := NewAuthUsecase(mockRepo, &mockSessionRepository{}, &mockJWTGenerator{})
		_, err := uc.Login(context.Background(), "unknown@example.com", password, client)

		if err == nil {
			t.Fatal("expected error for unknown user")
		}
		if err.Error() != "invalid email or password" {
			t.Errorf("expected generic error message, got: %v", err)
		}
	})

	t.Run("oldest session is evicted at the cap", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return testUser, nil
			},
		}
		evicted := false
		mockSessions := &mockSessionRepository{
			CountByUserIDFunc: func(ctx context.Context, userID uint) (int64, error) {
				return maxSessionsPerUser, nil
			},
			DeleteOldestByUserIDFunc: func(ctx context.Context, userID uint) error {
				evicted = true
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, mockSessions, &mockJWTGenerator{})
		_, err := uc.Login(context.Background(), testUser.Email, password, client)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !evicted {
			t.Error("oldest session should be evicted when the cap is reached")
		}
	})
}

func TestAuthUsecase_Refresh(t *testing.T) {
	testUser := &entity.User{ID: 1, Email: "test@example.com"}
	client := ClientInfo{UserAgent: "test-agent", IPAddress: "127.0.0.1"}

	validSession := func() *entity.Session {
		return &entity.Session{
			ID:        "valid-refresh-token",
			UserID:    testUser.ID,
			CreatedAt: time.Now().Add(-time.Hour),
			ExpiresAt: time.Now().Add(time.Hour),
		}
	}

	t.Run("successful refresh rotates the session", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				return testUser, nil
			},
		}
		revoked := ""
		mockSessions := &mockSessionRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*entity.Session, error) {
				return validSession(), nil
			},
			RevokeFunc: func(ctx context.Context, id string) error {
				revoked = id
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, mockSessions, &mockJWTGenerator{})
		pair, err := uc.Refresh(context.Background(), "valid-refresh-token", client)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if revoked != "valid-refresh-token" {
			t.Error("old session should be revoked on refresh")
		}
		if pair.RefreshToken == "valid-refresh-token" {
			t.Error("refresh token should be rotated")
		}
	})

	t.Run("empty token", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockSessionRepository{}, &mockJWTGenerator{})
		_, err := uc.Refresh(context.Background(), "", client)

		if !errors.Is(err, ErrInvalidRefreshToken) {
			t.Errorf("expected ErrInvalidRefreshToken, got: %v", err)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockSessionRepository{}, &mockJWTGenerator{})
		_, err := uc.Refresh(context.Background(), "unknown-token", client)

		if !errors.Is(err, ErrInvalidRefreshToken) {
			t.Errorf("expected ErrInvalidRefreshToken, got: %v", err)
		}
	})

	t.Run("revoked session", func(t *testing.T) {
		now := time.Now()
		mockSessions := &mockSessionRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*entity.Session, error) {
				s := validSession()
				s.RevokedAt = &now
				return s, nil
			},
		}

		uc := NewAuthUsecase(&mockUserRepository{}, mockSessions, &mockJWTGenerator{})
		_, err := uc.Refresh(context.Background(), "valid-refresh-token", client)

		if !errors.Is(err, ErrSessionRevoked) {
			t.Errorf("expected ErrSessionRevoked, got: %v", err)
		}
	})

	t.Run("expired session", func(t *testing.T) {
		mockSessions := &mockSessionRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*entity.Session, error) {
				s := validSession()
				s.ExpiresAt = time.Now().Add(-time.Minute)
				return s, nil
			},
		}

		uc := NewAuthUsecase(&mockUserRepository{}, mockSessions, &mockJWTGenerator{})
		_, err := uc.Refresh(context.Background(), "valid-refresh-token", client)

		if !errors.Is(err, ErrSessionExpired) {
			t.Errorf("expected ErrSessionExpired, got: %v", err)
		}
	})
}

func TestAuthUsecase_Logout(t *testing.T) {
	t.Run("revokes the session", func(t *testing.T) {
		revoked := ""
		mockSessions := &mockSessionRepository{
			RevokeFunc: func(ctx context.Context, id string) error {
				revoked = id
				return nil
			},
		}

		uc := NewAuthUsecase(&mockUserRepository{}, mockSessions, &mockJWTGenerator{})
		err := uc.Logout(context.Background(), "some-token")

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if revoked != "some-token" {
			t.Error("session should be revoked on logout")
		}
	})

	t.Run("unknown token is treated as already logged out", func(t *testing.T) {
		mockSessions := &mockSessionRepository{
			RevokeFunc: func(ctx context.Context, id string) error {
				return ErrSessionNotFound
			},
		}

		uc := NewAuthUsecase(&mockUserRepository{}, mockSessions, &mockJWTGenerator{})
		err := uc.Logout(context.Background(), "unknown-token")

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("empty token", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockSessionRepository{}, &mockJWTGenerator{})
		err := uc.Logout(context.Background(), "")

		if !errors.Is(err, ErrInvalidRefreshToken) {
			t.Errorf("expected ErrInvalidRefreshToken, got: %v", err)
		}
	})
}
