package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	byEmail map[string]*User
	nextID  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: make(map[string]*User)}
}

func (r *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := r.byEmail[email]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) Create(ctx context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	r.nextID++
	u.ID = string(rune('a' + r.nextID - 1))
	u.CreatedAt = time.Now()
	clone := *u
	r.byEmail[u.Email] = &clone
	return nil
}

func (r *fakeRepo) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	for _, u := range r.byEmail {
		if u.ID == id {
			u.LastLoginAt = &t
			return nil
		}
	}
	return ErrNotFound
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	var out []*User
	for _, u := range r.byEmail {
		clone := *u
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (r *fakeRepo) SetActive(ctx context.Context, id string, active bool) error {
	for _, u := range r.byEmail {
		if u.ID == id {
			u.IsActive = active
			return nil
		}
	}
	return ErrNotFound
}

// plainHasher avoids bcrypt cost in unit tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hash:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hash:"+password {
		return ErrInvalidCredentials
	}
	return nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes email and activates the account", func(t *testing.T) {
		svc := NewService(newFakeRepo(), plainHasher{})

		u, err := svc.Register(ctx, RegisterRequest{Email: "  Alice@Example.COM ", Password: "correcthorse"})
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", u.Email)
		assert.True(t, u.IsActive)
		assert.NotEqual(t, "correcthorse", u.PasswordHash)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		svc := NewService(newFakeRepo(), plainHasher{})

		_, err := svc.Register(ctx, RegisterRequest{Email: "a@b.c", Password: "short"})
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("rejects empty email", func(t *testing.T) {
		svc := NewService(newFakeRepo(), plainHasher{})

		_, err := svc.Register(ctx, RegisterRequest{Email: "   ", Password: "correcthorse"})
		assert.ErrorIs(t, err, ErrEmailRequired)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := NewService(newFakeRepo(), plainHasher{})

		_, err := svc.Register(ctx, RegisterRequest{Email: "a@b.c", Password: "correcthorse"})
		require.NoError(t, err)

		_, err = svc.Register(ctx, RegisterRequest{Email: "A@B.C", Password: "correcthorse"})
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (Service, *fakeRepo) {
		repo := newFakeRepo()
		svc := NewService(repo, plainHasher{})
		_, err := svc.Register(ctx, RegisterRequest{Email: "a@b.c", Password: "correcthorse"})
		require.NoError(t, err)
		return svc, repo
	}

	t.Run("valid credentials record the login", func(t *testing.T) {
		svc, _ := setup(t)

		u, err := svc.Authenticate(ctx, "A@b.c", "correcthorse")
		require.NoError(t, err)
		assert.NotNil(t, u.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Authenticate(ctx, "a@b.c", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email does not leak existence", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Authenticate(ctx, "nobody@b.c", "correcthorse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		svc, repo := setup(t)
		u := repo.byEmail["a@b.c"]
		u.IsActive = false

		_, err := svc.Authenticate(ctx, "a@b.c", "correcthorse")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})
}
