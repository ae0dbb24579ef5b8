package app

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"knowledgehub/internal/model"
	"knowledgehub/internal/pkg/jwtutil"
	"knowledgehub/internal/repository"
)

type fakeUserStore struct {
	users     map[uint]*model.User
	nextID    uint
	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint]*model.User{}, nextID: 1}
}

func (f *fakeUserStore) Create(user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("create user: %w", repository.ErrDuplicateKey)
		}
	}
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) GetByID(id uint) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeUserStore) GetByUsername(username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) seed(t *testing.T, username, email, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{
		ID:           f.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	f.nextID++
	f.users[user.ID] = user
	return user
}

func newAuthService(store *fakeUserStore) *AuthService {
	return NewAuthService(store, "test-secret", time.Hour)
}

func TestRegister_Success(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)

	err := svc.Register(RegisterInput{Username: "alice", Email: "Alice@Example.com", Password: "password123"})
	require.NoError(t, err)

	stored, err := store.GetByEmail("alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, "alice", stored.Username)
	require.NotEqual(t, "password123", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
}

func TestRegister_InvalidInput(t *testing.T) {
	svc := newAuthService(newFakeUserStore())

	for name, input := range map[string]RegisterInput{
		"blank username": {Username: " ", Email: "a@b.com", Password: "password123"},
		"blank email":    {Username: "alice", Email: "", Password: "password123"},
		"short password": {Username: "alice", Email: "a@b.com", Password: "short"},
	} {
		require.ErrorIs(t, svc.Register(input), ErrInvalidInput, name)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	store := newFakeUserStore()
	store.seed(t, "alice", "alice@example.com", "password123")
	svc := newAuthService(store)

	err := svc.Register(RegisterInput{Username: "alice", Email: "other@example.com", Password: "password123"})
	require.ErrorIs(t, err, ErrUsernameExists)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	store.seed(t, "alice", "alice@example.com", "password123")
	svc := newAuthService(store)

	err := svc.Register(RegisterInput{Username: "bob", Email: "alice@example.com", Password: "password123"})
	require.ErrorIs(t, err, ErrEmailExists)
}

// A concurrent registration can pass the existence checks and then hit
// the unique index; the duplicate-key signal must still resolve to a
// specific duplicate error.
func TestRegister_DuplicateKeyRace(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)

	store.createErr = fmt.Errorf("create user: %w", repository.ErrDuplicateKey)

	// No row with this username exists: the collision was on email.
	err := svc.Register(RegisterInput{Username: "carol", Email: "taken@example.com", Password: "password123"})
	require.ErrorIs(t, err, ErrEmailExists)

	// The racing winner's row carries the username: collision reported on it.
	store.users[99] = &model.User{ID: 99, Username: "dave", Email: "dave@example.com"}
	err = svc.Register(RegisterInput{Username: "dave", Email: "dave2@example.com", Password: "password123"})
	require.ErrorIs(t, err, ErrUsernameExists)
}

func TestLogin_Success(t *testing.T) {
	store := newFakeUserStore()
	user := store.seed(t, "alice", "alice@example.com", "password123")
	svc := newAuthService(store)

	result, err := svc.Login(LoginInput{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)
	require.Equal(t, user.ID, result.User.ID)

	claims, err := jwtutil.ParseToken("test-secret", result.Token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "alice@example.com", claims.Email)
}

// A wrong password and a nonexistent account must be indistinguishable.
func TestLogin_NoExistenceLeak(t *testing.T) {
	store := newFakeUserStore()
	store.seed(t, "alice", "alice@example.com", "password123")
	svc := newAuthService(store)

	_, errWrongPassword := svc.Login(LoginInput{Email: "alice@example.com", Password: "wrong-password"})
	_, errUnknownEmail := svc.Login(LoginInput{Email: "nobody@example.com", Password: "password123"})

	require.ErrorIs(t, errWrongPassword, ErrInvalidCredential)
	require.ErrorIs(t, errUnknownEmail, ErrInvalidCredential)
	require.Equal(t, errWrongPassword, errUnknownEmail)
}

func TestGetUserByID(t *testing.T) {
	store := newFakeUserStore()
	user := store.seed(t, "alice", "alice@example.com", "password123")
	svc := newAuthService(store)

	got, err := svc.GetUserByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Username, got.Username)

	_, err = svc.GetUserByID(0)
	require.ErrorIs(t, err, ErrInvalidInput)
}
