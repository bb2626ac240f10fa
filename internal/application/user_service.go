package application

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/nazarov/footballmanager/internal/domain/entity"
	"github.com/nazarov/footballmanager/internal/domain/repository"
	"github.com/nazarov/footballmanager/pkg/helpers"
)

const profileCacheTTL = 5 * time.Minute

// UserService resolves the verified subject of a request into an
// externally-safe profile projection, and carries the profile-adjacent
// features (player search, picture upload).
//
// The subject is always an explicit argument provided by the boundary layer
// after token verification; this package never inspects ambient request state.
type UserService struct {
	Users          repository.UserRepository
	Redis          *redis.Client
	Logger         *logrus.Logger
	ES             *elasticsearch.Client
	ESPlayersIndex string
	GCS            *storage.Client
	GCSBucket      string
}

func NewUserService(users repository.UserRepository, rdb *redis.Client, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Redis: rdb, Logger: logger}
}

// ProfileView is the projection of an account safe for external exposure.
// It never carries the password hash.
type ProfileView struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	DateOfBirth       string   `json:"date_of_birth,omitempty"`
	PlayingPosition   string   `json:"playing_position,omitempty"`
	ProfilePictureURL string   `json:"profile_picture_url,omitempty"`
	ContactNumber     string   `json:"contact_number,omitempty"`
	Roles             []string `json:"roles"`
}

func profileKey(subject string) string {
	return "profile:" + subject
}

// GetProfile loads the account behind the verified subject. An empty subject
// is a contract violation by the caller, not a user error.
func (s *UserService) GetProfile(ctx context.Context, subject string) (*ProfileView, error) {
	if subject == "" {
		return nil, ErrNoAuthenticatedUser
	}

	if s.Redis != nil {
		var cached ProfileView
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, profileKey(subject), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	u, err := s.Users.GetByEmail(ctx, subject)
	if err != nil {
		return nil, err
	}
	if u == nil {
		// Token subject no longer maps to a live account.
		return nil, ErrUserNotFound
	}

	view := projectProfile(u)
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, profileKey(subject), view, profileCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("subject", subject).Warn("profile cache write failed")
		}
	}
	return view, nil
}

// UploadProfilePicture stores the uploaded image in GCS and records its
// public URL on the account.
func (s *UserService) UploadProfilePicture(ctx context.Context, subject string, r io.Reader, filename, contentType string) (string, error) {
	if subject == "" {
		return "", ErrNoAuthenticatedUser
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", ErrStorageUnavailable
	}

	u, err := s.Users.GetByEmail(ctx, subject)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}

	if err := s.Users.UpdateProfilePicture(ctx, u.ID, url); err != nil {
		return "", err
	}
	if s.Redis != nil {
		_ = helpers.RedisDel(ctx, s.Redis, profileKey(subject))
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID}).Info("profile picture updated")
	}
	return url, nil
}

// SearchPlayers performs a multi_match search on name, email, and position.
func (s *UserService) SearchPlayers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESPlayersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "email", "playing_position"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESPlayersIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func projectProfile(u *entity.User) *ProfileView {
	roles := u.RoleNames()
	sort.Strings(roles) // stable output; role order carries no meaning
	view := &ProfileView{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		PlayingPosition:   u.PlayingPosition,
		ProfilePictureURL: u.ProfilePictureURL,
		ContactNumber:     u.ContactNumber,
		Roles:             roles,
	}
	if u.DateOfBirth != nil {
		view.DateOfBirth = u.DateOfBirth.Format("2006-01-02")
	}
	return view
}
