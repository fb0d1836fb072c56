package service

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"xpose-backend/internal/domains/user/model"
)

func TestMain(m *testing.M) {
	hashCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type fakeRepo struct {
	rows   map[int64]model.User
	nextID int64
}

func newFakeRepo() *fakeRepo { return &fakeRepo{rows: map[int64]model.User{}} }

func (f *fakeRepo) List(context.Context) ([]model.User, error) {
	out := make([]model.User, 0)
	for _, u := range f.rows {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeRepo) Filter(ctx context.Context, _ model.Filter) ([]model.User, error) {
	return f.List(ctx)
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.rows[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.rows {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeRepo) emailTaken(email string, except int64) bool {
	for id, u := range f.rows {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

func (f *fakeRepo) Create(_ context.Context, u *model.User) error {
	if f.emailTaken(u.Email, 0) {
		return model.ErrEmailAlreadyExists
	}
	f.nextID++
	u.ID = f.nextID
	f.rows[u.ID] = *u
	return nil
}

func (f *fakeRepo) Update(_ context.Context, u *model.User) error {
	if _, ok := f.rows[u.ID]; !ok {
		return model.ErrUserNotFound
	}
	if f.emailTaken(u.Email, u.ID) {
		return model.ErrEmailAlreadyExists
	}
	f.rows[u.ID] = *u
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return model.ErrUserNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeRepo) Count(context.Context) (int64, error) { return int64(len(f.rows)), nil }

func newUser() model.User {
	return model.User{Username: "aleix", Email: "aleix@xpose.art", Password: "s3cret", Name: "Aleix"}
}

func TestCreateHashesPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo)

	created, err := svc.Create(context.Background(), newUser())
	require.NoError(t, err)

	assert.Empty(t, created.Password)
	assert.Empty(t, created.PasswordHash)

	stored := repo.rows[created.ID]
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")))
}

func TestCreateValidation(t *testing.T) {
	svc := NewUserService(newFakeRepo())

	tests := []struct {
		name   string
		mutate func(*model.User)
	}{
		{"no username", func(u *model.User) { u.Username = "" }},
		{"bad email", func(u *model.User) { u.Email = "not-an-email" }},
		{"no password", func(u *model.User) { u.Password = "" }},
		{"password over 72 bytes", func(u *model.User) { u.Password = strings.Repeat("é", 72) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newUser()
			tt.mutate(&u)
			_, err := svc.Create(context.Background(), u)
			assert.Error(t, err)
			assert.NotErrorIs(t, err, bcrypt.ErrPasswordTooLong)
		})
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc := NewUserService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, newUser())
	require.NoError(t, err)

	_, err = svc.Create(ctx, newUser())
	assert.ErrorIs(t, err, model.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc := NewUserService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, newUser())
	require.NoError(t, err)

	got, err := svc.Login(ctx, model.LoginRequest{Email: "aleix@xpose.art", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Empty(t, got.PasswordHash)

	_, err = svc.Login(ctx, model.LoginRequest{Email: "aleix@xpose.art", Password: "wrong"})
	assert.ErrorIs(t, err, model.ErrUserNotFound)

	_, err = svc.Login(ctx, model.LoginRequest{Email: "nobody@xpose.art", Password: "s3cret"})
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestUpdateKeepsPasswordUnlessSupplied(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, newUser())
	require.NoError(t, err)
	before := repo.rows[created.ID].PasswordHash

	in := newUser()
	in.Password = ""
	in.Surname = "Vidal"
	updated, err := svc.Update(ctx, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Vidal", updated.Surname)
	assert.Equal(t, before, repo.rows[created.ID].PasswordHash)

	in.Password = "n3w"
	_, err = svc.Update(ctx, created.ID, in)
	require.NoError(t, err)
	_, err = svc.Login(ctx, model.LoginRequest{Email: in.Email, Password: "n3w"})
	assert.NoError(t, err)
}

func TestUpdateUnknownDoesNotInsert(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo)

	_, err := svc.Update(context.Background(), 8, newUser())
	assert.ErrorIs(t, err, model.ErrUserNotFound)
	assert.Empty(t, repo.rows)
}
