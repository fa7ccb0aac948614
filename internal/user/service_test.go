package user_test

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vasiliy-maslov/ecommerce-shop/internal/user"
)

type mockUserRepository struct {
	createFunc     func(ctx context.Context, u *user.User) error
	getByEmailFunc func(ctx context.Context, email string) (*user.User, error)
	getByIDFunc    func(ctx context.Context, id uuid.UUID) (*user.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	return m.createFunc(ctx, u)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return m.getByEmailFunc(ctx, email)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return m.getByIDFunc(ctx, id)
}

func TestUserService_Register(t *testing.T) {
	t.Run("hashes_password_and_defaults_role", func(t *testing.T) {
		var created *user.User
		repo := &mockUserRepository{
			createFunc: func(ctx context.Context, u *user.User) error {
				u.ID = uuid.Must(uuid.NewV4())
				created = u
				return nil
			},
		}
		svc := user.NewService(repo, bcrypt.MinCost)

		u, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret-pass", "")
		require.NoError(t, err)

		assert.Equal(t, user.RoleUser, u.Role)
		assert.NotEqual(t, "s3cret-pass", created.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cret-pass")))
	})

	t.Run("duplicate_email", func(t *testing.T) {
		repo := &mockUserRepository{
			createFunc: func(ctx context.Context, u *user.User) error {
				return user.ErrEmailExists
			},
		}
		svc := user.NewService(repo, bcrypt.MinCost)

		_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret-pass", "")
		assert.ErrorIs(t, err, user.ErrEmailExists)
	})

	t.Run("explicit_admin_role", func(t *testing.T) {
		repo := &mockUserRepository{
			createFunc: func(ctx context.Context, u *user.User) error {
				u.ID = uuid.Must(uuid.NewV4())
				return nil
			},
		}
		svc := user.NewService(repo, bcrypt.MinCost)

		u, err := svc.Register(context.Background(), "Root", "root@example.com", "s3cret-pass", user.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, user.RoleAdmin, u.Role)
	})
}

func TestUserService_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &user.User{
		ID:           uuid.Must(uuid.NewV4()),
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		Role:         user.RoleUser,
	}

	t.Run("success", func(t *testing.T) {
		repo := &mockUserRepository{
			getByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
				return stored, nil
			},
		}
		svc := user.NewService(repo, bcrypt.MinCost)

		u, err := svc.Authenticate(context.Background(), "alice@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, stored.ID, u.ID)
	})

	t.Run("wrong_password", func(t *testing.T) {
		repo := &mockUserRepository{
			getByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
				return stored, nil
			},
		}
		svc := user.NewService(repo, bcrypt.MinCost)

		_, err := svc.Authenticate(context.Background(), "alice@example.com", "wrong")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("unknown_email_maps_to_invalid_credentials", func(t *testing.T) {
		repo := &mockUserRepository{
			getByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
				return nil, user.ErrNotFound
			},
		}
		svc := user.NewService(repo, bcrypt.MinCost)

		_, err := svc.Authenticate(context.Background(), "ghost@example.com", "whatever")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}
