package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"userdirectory/internal/users/app"
	"userdirectory/internal/users/domain/entities"
	"userdirectory/internal/users/ports/api"
)

var errDatabaseOperation = errors.New("database error")

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestNewUserUseCase(t *testing.T) {
	useCase := app.NewUserUseCase(new(mockUserRepository))

	assert.NotNil(t, useCase, "NewUserUseCase should return a non-nil object")
}

func TestFindAll(t *testing.T) {
	ctx := context.Background()

	t.Run("returns repository order", func(t *testing.T) {
		repo := new(mockUserRepository)
		users := []*entities.User{{ID: "1", Username: "ada"}, {ID: "2", Username: "bob"}}
		repo.On("FindAll", mock.Anything).Return(users, nil).Once()

		got, err := app.NewUserUseCase(repo).FindAll(ctx)

		require.NoError(t, err)
		assert.Equal(t, users, got)
		repo.AssertExpectations(t)
	})

	t.Run("empty store gives empty list", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("FindAll", mock.Anything).Return(nil, nil).Once()

		got, err := app.NewUserUseCase(repo).FindAll(ctx)

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("FindAll", mock.Anything).
			Return(nil, entities.NewStoreError("find all users", errDatabaseOperation)).Once()

		got, err := app.NewUserUseCase(repo).FindAll(ctx)

		require.Error(t, err)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, entities.ErrStore)
	})
}

func TestFindByUsernameAndEmail(t *testing.T) {
	ctx := context.Background()
	ada := &entities.User{ID: "1", Username: "ada", Email: "ada@x.com"}

	tests := []struct {
		name      string
		setup     func(repo *mockUserRepository)
		call      func(svc api.UserService) (*entities.User, error)
		expected  *entities.User
		expectErr bool
	}{
		{
			name: "username found",
			setup: func(repo *mockUserRepository) {
				repo.On("FindByUsername", mock.Anything, "ada").Return(ada, nil).Once()
			},
			call: func(svc api.UserService) (*entities.User, error) {
				return svc.FindByUsername(ctx, "ada")
			},
			expected: ada,
		},
		{
			name: "username absent is not an error",
			setup: func(repo *mockUserRepository) {
				repo.On("FindByUsername", mock.Anything, "nobody").Return(nil, entities.ErrUserNotFound).Once()
			},
			call: func(svc api.UserService) (*entities.User, error) {
				return svc.FindByUsername(ctx, "nobody")
			},
		},
		{
			name: "email found",
			setup: func(repo *mockUserRepository) {
				repo.On("FindByEmail", mock.Anything, "ada@x.com").Return(ada, nil).Once()
			},
			call: func(svc api.UserService) (*entities.User, error) {
				return svc.FindByEmail(ctx, "ada@x.com")
			},
			expected: ada,
		},
		{
			name: "email store failure",
			setup: func(repo *mockUserRepository) {
				repo.On("FindByEmail", mock.Anything, "ada@x.com").
					Return(nil, entities.NewStoreError("find user by email", errDatabaseOperation)).Once()
			},
			call: func(svc api.UserService) (*entities.User, error) {
				return svc.FindByEmail(ctx, "ada@x.com")
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockUserRepository)
			tt.setup(repo)

			got, err := tt.call(app.NewUserUseCase(repo))

			if tt.expectErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, entities.ErrStore)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid input is stored and returned with id", func(t *testing.T) {
		repo := new(mockUserRepository)
		followers := []string{"f1", "f2"}
		in := &entities.UserInput{
			FirstName: strPtr("Ada"),
			LastName:  strPtr("Lovelace"),
			Username:  strPtr("ada"),
			Email:     strPtr("ada@x.com"),
			Followers: &followers,
		}

		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.ID == "" && u.FirstName == "Ada" && u.LastName == "Lovelace" &&
				u.Username == "ada" && u.Email == "ada@x.com" &&
				assert.ObjectsAreEqual([]string{"f1", "f2"}, u.Followers)
		})).Return(&entities.User{
			ID:        "new-id",
			FirstName: "Ada",
			LastName:  "Lovelace",
			Username:  "ada",
			Email:     "ada@x.com",
			Followers: []string{"f1", "f2"},
		}, nil).Once()

		created, err := app.NewUserUseCase(repo).Create(ctx, in)

		require.NoError(t, err)
		assert.Equal(t, "new-id", created.ID)
		assert.Equal(t, "Ada Lovelace", created.FullName())
		assert.Equal(t, []string{"f1", "f2"}, created.Followers)
		repo.AssertExpectations(t)
	})

	t.Run("absent fields default to empty", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.FirstName == "" && u.Email == "" && u.Followers != nil && len(u.Followers) == 0
		})).Return(&entities.User{ID: "id-1"}, nil).Once()

		created, err := app.NewUserUseCase(repo).Create(ctx, nil)

		require.NoError(t, err)
		assert.Equal(t, "id-1", created.ID)
		assert.NotNil(t, created.Followers)
	})

	t.Run("every violation is reported and nothing is stored", func(t *testing.T) {
		repo := new(mockUserRepository)
		in := &entities.UserInput{
			FirstName: strPtr("Bo"),
			LastName:  strPtr("Li"),
			Username:  strPtr("ok-name"),
			Email:     strPtr("not-an-email"),
		}

		created, err := app.NewUserUseCase(repo).Create(ctx, in)

		require.Error(t, err)
		assert.Nil(t, created)

		var vErr *entities.ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Len(t, vErr.Violations, 3)
		assert.Equal(t, "firstName", vErr.Violations[0].Field)
		assert.Equal(t, "lastName", vErr.Violations[1].Field)
		assert.Equal(t, "email", vErr.Violations[2].Field)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("Create", mock.Anything, mock.Anything).
			Return(nil, entities.NewStoreError("create user", errDatabaseOperation)).Once()

		created, err := app.NewUserUseCase(repo).Create(ctx, &entities.UserInput{Username: strPtr("ada")})

		require.Error(t, err)
		assert.Nil(t, created)
		assert.ErrorIs(t, err, entities.ErrStore)
		assert.ErrorIs(t, err, errDatabaseOperation)
	})
}

func TestResolveFollowers(t *testing.T) {
	ctx := context.Background()
	x := &entities.User{ID: "x", Username: "xavier"}
	z := &entities.User{ID: "z", Username: "zoe"}

	t.Run("dangling references are skipped and order is kept", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("FindByID", mock.Anything, "z").Return(z, nil).Once()
		repo.On("FindByID", mock.Anything, "missing").Return(nil, entities.ErrUserNotFound).Once()
		repo.On("FindByID", mock.Anything, "x").Return(x, nil).Once()

		user := &entities.User{ID: "u", Followers: []string{"z", "missing", "x"}}
		got, err := app.NewUserUseCase(repo).ResolveFollowers(ctx, user)

		require.NoError(t, err)
		assert.Equal(t, []*entities.User{z, x}, got)
		repo.AssertExpectations(t)
	})

	t.Run("no followers", func(t *testing.T) {
		repo := new(mockUserRepository)

		got, err := app.NewUserUseCase(repo).ResolveFollowers(ctx, &entities.User{ID: "u"})

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("duplicate references resolve twice", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("FindByID", mock.Anything, "x").Return(x, nil).Twice()

		got, err := app.NewUserUseCase(repo).ResolveFollowers(ctx, &entities.User{Followers: []string{"x", "x"}})

		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("store failure aborts resolution", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("FindByID", mock.Anything, "x").
			Return(nil, entities.NewStoreError("find user by id", errDatabaseOperation)).Once()

		got, err := app.NewUserUseCase(repo).ResolveFollowers(ctx, &entities.User{Followers: []string{"x", "z"}})

		require.Error(t, err)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, entities.ErrStore)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, "z")
	})
}

func TestFindProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("profile with expanded followers", func(t *testing.T) {
		repo := new(mockUserRepository)
		x := &entities.User{ID: "x", Username: "xavier"}
		u := &entities.User{ID: "u", Username: "ursula", Followers: []string{"x", "gone"}}
		repo.On("FindByUsername", mock.Anything, "ursula").Return(u, nil).Once()
		repo.On("FindByID", mock.Anything, "x").Return(x, nil).Once()
		repo.On("FindByID", mock.Anything, "gone").Return(nil, entities.ErrUserNotFound).Once()

		profile, err := app.NewUserUseCase(repo).FindProfile(ctx, "ursula")

		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, u, profile.User)
		assert.Equal(t, []*entities.User{x}, profile.Followers)
	})

	t.Run("absent user gives nil profile", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("FindByUsername", mock.Anything, "nobody").Return(nil, entities.ErrUserNotFound).Once()

		profile, err := app.NewUserUseCase(repo).FindProfile(ctx, "nobody")

		require.NoError(t, err)
		assert.Nil(t, profile)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("FindByUsername", mock.Anything, "ada").
			Return(nil, entities.NewStoreError("find user by username", errDatabaseOperation)).Once()

		profile, err := app.NewUserUseCase(repo).FindProfile(ctx, "ada")

		require.Error(t, err)
		assert.Nil(t, profile)
		assert.ErrorIs(t, err, entities.ErrStore)
	})
}
