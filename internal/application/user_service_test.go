package application_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazarov/footballmanager/internal/application"
	"github.com/nazarov/footballmanager/internal/domain/entity"
)

func seedUser(users *fakeUserRepo) *entity.User {
	dob := time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	u := &entity.User{
		Name:            "Ann",
		Email:           "ann@x.com",
		Password:        "hashed:password123",
		DateOfBirth:     &dob,
		PlayingPosition: "Striker",
		ContactNumber:   "+441234567890",
		Roles:           []entity.Role{{ID: 1, Name: "ROLE_USER"}},
	}
	_ = users.Create(context.Background(), u)
	return u
}

func TestGetProfile_Projection(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(users)
	svc := application.NewUserService(users, nil, nil)

	view, err := svc.GetProfile(context.Background(), "ann@x.com")
	require.NoError(t, err)

	assert.Equal(t, "Ann", view.Name)
	assert.Equal(t, "ann@x.com", view.Email)
	assert.Equal(t, "1999-01-01", view.DateOfBirth)
	assert.Equal(t, "Striker", view.PlayingPosition)
	assert.Equal(t, "+441234567890", view.ContactNumber)
	assert.ElementsMatch(t, []string{"ROLE_USER"}, view.Roles)
	assert.NotContains(t, strings.ToLower(view.Name+view.Email), "hashed:", "projection must never leak the hash")
}

func TestGetProfile_Idempotent(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(users)
	svc := application.NewUserService(users, nil, nil)

	first, err := svc.GetProfile(context.Background(), "ann@x.com")
	require.NoError(t, err)
	second, err := svc.GetProfile(context.Background(), "ann@x.com")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetProfile_UnknownSubject(t *testing.T) {
	svc := application.NewUserService(newFakeUserRepo(), nil, nil)

	_, err := svc.GetProfile(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, application.ErrUserNotFound)
}

func TestGetProfile_EmptySubject(t *testing.T) {
	svc := application.NewUserService(newFakeUserRepo(), nil, nil)

	_, err := svc.GetProfile(context.Background(), "")
	assert.ErrorIs(t, err, application.ErrNoAuthenticatedUser)
}

func TestUploadProfilePicture_StorageNotConfigured(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(users)
	svc := application.NewUserService(users, nil, nil)

	_, err := svc.UploadProfilePicture(context.Background(), "ann@x.com", strings.NewReader("img"), "a.png", "image/png")
	assert.ErrorIs(t, err, application.ErrStorageUnavailable)
}

func TestSearchPlayers_NoIndexConfigured(t *testing.T) {
	svc := application.NewUserService(newFakeUserRepo(), nil, nil)

	hits, err := svc.SearchPlayers(context.Background(), "ann", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
