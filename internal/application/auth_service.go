package application

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/nazarov/footballmanager/internal/domain/entity"
	"github.com/nazarov/footballmanager/internal/domain/repository"
	"github.com/nazarov/footballmanager/pkg/helpers"
	"github.com/nazarov/footballmanager/pkg/mailer"
)

var dobShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// AuthService orchestrates registration and login. Side effects after a
// successful registration (welcome email, search indexing) are best-effort
// and never change the returned result.
type AuthService struct {
	Users          repository.UserRepository
	Roles          repository.RoleRepository
	Hasher         helpers.PasswordHasher
	JWT            *helpers.JWTManager
	Logger         *logrus.Logger
	Pub            *helpers.RabbitPublisher
	ES             *elasticsearch.Client
	ESPlayersIndex string
	AppName        string
	MailEnabled    bool
}

func NewAuthService(users repository.UserRepository, roles repository.RoleRepository, hasher helpers.PasswordHasher, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Roles: roles, Hasher: hasher, JWT: jwt, Logger: logger}
}

// RegisterInput carries the already bind-validated registration payload.
// DateOfBirth, PlayingPosition, and ContactNumber are optional.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	DateOfBirth     string
	PlayingPosition string
	ContactNumber   string
}

// CanonicalEmail normalizes an email for storage and lookup. Uniqueness is
// therefore case-insensitive for everything written through this code.
func CanonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account with the default role. The uniqueness check
// runs before any mutation; the database unique index closes the remaining
// check-then-insert race.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	email := CanonicalEmail(in.Email)

	exists, err := s.Users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		if s.Logger != nil {
			s.Logger.WithField("email", email).Warn("registration rejected: email already exists")
		}
		return nil, ErrEmailTaken
	}

	role, err := s.Roles.GetByName(ctx, DefaultUserRole)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotConfigured
	}

	dob, err := parseDateOfBirth(in.DateOfBirth)
	if err != nil {
		return nil, err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Name:            in.Name,
		Email:           email,
		Password:        hash,
		DateOfBirth:     dob,
		PlayingPosition: in.PlayingPosition,
		ContactNumber:   in.ContactNumber,
		Roles:           []entity.Role{*role},
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "email": email}).Info("user registered")
	}

	s.enqueueWelcome(ctx, u)
	_ = s.indexPlayer(ctx, u)
	return u, nil
}

// Login verifies credentials and issues a session token bound to the
// account's email. No session state is persisted anywhere.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	u, err := s.Users.GetByEmail(ctx, CanonicalEmail(email))
	if err != nil {
		return "", time.Time{}, err
	}
	if u == nil || !s.Hasher.Matches(password, u.Password) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.GenerateToken(u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("token generation failed")
		}
		return "", time.Time{}, err
	}
	if s.Logger != nil {
		s.Logger.WithField("email", u.Email).Info("user logged in")
	}
	return token, exp, nil
}

// parseDateOfBirth enforces the strict YYYY-MM-DD shape and rejects dates
// after today. time.Parse alone tolerates unpadded digits, hence the regexp.
func parseDateOfBirth(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if !dobShape.MatchString(raw) {
		return nil, ErrInvalidDateOfBirth
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, ErrInvalidDateOfBirth
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if d.After(today) {
		return nil, ErrFutureDateOfBirth
	}
	return &d, nil
}

func (s *AuthService) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.NewWelcomeJob(s.AppName, u.Name, u.Email)
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("welcome email enqueue failed")
	}
}

func (s *AuthService) indexPlayer(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESPlayersIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":               u.ID,
		"name":             u.Name,
		"email":            u.Email,
		"playing_position": u.PlayingPosition,
		"created_at":       u.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESPlayersIndex,
		DocumentID: strconv.FormatInt(u.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("player index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"status": res.Status(), "user_id": u.ID}).Warn("player index response error")
	}
	return nil
}
