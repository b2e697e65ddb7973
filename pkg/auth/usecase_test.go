package auth_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elecmate/cvbuilder/pkg/auth"
	"github.com/elecmate/cvbuilder/pkg/repository/memory"
)

type stubTokens struct{}

func (stubTokens) Generate(_ context.Context, u auth.User) (string, error) { return "token-" + u.Email, nil }

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := auth.NewAuthService(memory.NewUserRepository(), stubTokens{})

	res, err := svc.Register(ctx, "  Jane@Example.com ", "s3cret-pass", " Jane Smith ")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", res.User.Email)
	assert.Equal(t, "Jane Smith", res.User.FullName)
	assert.NotEqual(t, "s3cret-pass", res.User.PasswordHash)
	assert.Equal(t, "token-jane@example.com", res.Token)

	_, err = svc.Register(ctx, "jane@example.com", "other-pass", "")
	assert.ErrorIs(t, err, auth.ErrUserAlreadyExists)

	got, err := svc.Login(ctx, "JANE@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, got.User.ID)

	_, err = svc.Login(ctx, "jane@example.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRegister_Validation(t *testing.T) {
	svc := auth.NewAuthService(memory.NewUserRepository(), stubTokens{})
	cases := map[string][2]string{
		"blank email":    {" ", "long-enough"},
		"no password":    {"a@b.co", ""},
		"bad email":      {"not-an-email", "long-enough"},
		"display name":   {"Jane <jane@example.com>", "long-enough"},
		"short password": {"a@b.co", "short"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), in[0], in[1], "")
			var invalid auth.ErrInvalidInput
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestDirectory(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	svc := auth.NewAuthService(repo, stubTokens{})
	res, err := svc.Register(ctx, "jane@example.com", "s3cret-pass", "Jane Smith")
	require.NoError(t, err)

	dir := auth.NewDirectory(repo)
	info, err := dir.UserInfo(ctx, res.User.ID)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "Jane Smith", info.FullName)
	assert.Equal(t, "jane@example.com", info.Email)

	info, err = dir.UserInfo(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, info)
}
