package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pradyumyelame/EasyToStay/internal/auth"
	apperrors "github.com/pradyumyelame/EasyToStay/internal/errors"
	"github.com/pradyumyelame/EasyToStay/internal/events"
	"github.com/pradyumyelame/EasyToStay/internal/metrics"
	"github.com/pradyumyelame/EasyToStay/internal/model"
	"github.com/pradyumyelame/EasyToStay/internal/repository"
	"github.com/pradyumyelame/EasyToStay/internal/storage"
)

// DefaultBcryptCost is used when no cost is configured.
const DefaultBcryptCost = 10

// Upload is a file received with a request.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// RegisterInput holds the fields of a registration request.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	ProfilePic *Upload
}

// ProfileUpdate holds the fields of a profile update. Nil fields are left
// untouched and an empty Password keeps the current one.
type ProfileUpdate struct {
	Name       *string
	Email      *string
	ProfilePic *string
	Password   string
}

// AuthService handles registration, login and the caller's profile.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Profile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*model.User, error)
}

type authService struct {
	users      repository.UserRepository
	tokens     *auth.TokenService
	files      storage.Store
	publisher  events.Publisher
	metrics    *metrics.Metrics
	log        *zap.Logger
	bcryptCost int
	// publicPrefix turns a storage key into the path recorded as profilePic.
	publicPrefix string
}

// AuthOption customises the auth service.
type AuthOption func(*authService)

// WithPublicPrefix sets the URL prefix stored files are served under. It
// defaults to storage.DefaultPublicPrefix.
func WithPublicPrefix(prefix string) AuthOption {
	return func(s *authService) {
		if prefix != "" {
			s.publicPrefix = prefix
		}
	}
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	files storage.Store,
	publisher events.Publisher,
	m *metrics.Metrics,
	log *zap.Logger,
	bcryptCost int,
	opts ...AuthOption,
) AuthService {
	if bcryptCost == 0 {
		bcryptCost = DefaultBcryptCost
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	s := &authService{
		users:        users,
		tokens:       tokens,
		files:        files,
		publisher:    publisher,
		metrics:      m,
		log:          log,
		bcryptCost:   bcryptCost,
		publicPrefix: storage.DefaultPublicPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a new user with a hashed password. The email is checked
// before inserting; the store's unique index catches concurrent duplicates.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := normalizeEmail(in.Email)

	// Check if user already exists
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.ErrDuplicateEmail
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.log.Error("check user existence", zap.Error(err))
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	var picKey string
	if in.ProfilePic != nil {
		picKey, err = s.saveUpload(ctx, storage.ProfilePicPrefix, in.ProfilePic)
		if err != nil {
			return nil, err
		}
		user.ProfilePic = storage.PublicPath(s.publicPrefix, picKey)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if picKey != "" {
			s.removeFile(ctx, picKey)
		}
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.ErrDuplicateEmail
		}
		s.log.Error("create user", zap.Error(err))
		return nil, fmt.Errorf("create user: %w", err)
	}

	publish(ctx, s.publisher, s.log, events.SubjectUserRegistered, events.UserRegistered{
		UserID: user.ID,
		Email:  user.Email,
		At:     time.Now().UTC(),
	})
	return user, nil
}

// Login checks the credentials and issues a session token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.metrics.Login(metrics.LoginFailure)
			return "", nil, apperrors.ErrInvalidLogin
		}
		s.log.Error("find user for login", zap.Error(err))
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.metrics.Login(metrics.LoginFailure)
		return "", nil, apperrors.ErrInvalidLogin
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	s.metrics.Login(metrics.LoginSuccess)
	return token, user, nil
}

// Profile returns the user behind an authenticated session.
func (s *authService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
		}
		s.log.Error("find user", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateProfile changes the caller's own profile. A new email must not belong
// to another user; a non-empty password is re-hashed.
func (s *authService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*model.User, error) {
	update := model.UserUpdate{Name: in.Name, ProfilePic: in.ProfilePic}

	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email must not be empty", apperrors.ErrInvalidInput)
		}
		existing, err := s.users.FindByEmail(ctx, email)
		switch {
		case err == nil && auth.CanonicalID(existing.ID) != auth.CanonicalID(userID):
			return nil, apperrors.ErrDuplicateEmail
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			s.log.Error("check email", zap.Error(err))
			return nil, fmt.Errorf("check email: %w", err)
		}
		update.Email = &email
	}

	if in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hash := string(hashed)
		update.PasswordHash = &hash
	}

	user, err := s.users.UpdateByID(ctx, userID, update)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, apperrors.ErrDuplicateEmail
		}
		s.log.Error("update profile", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func (s *authService) saveUpload(ctx context.Context, prefix string, up *Upload) (string, error) {
	key := storage.NewKey(prefix, up.Filename, up.ContentType)
	saved, err := s.files.Save(ctx, key, up.Body, up.Size, up.ContentType)
	if err != nil {
		s.log.Error("save upload", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("save upload: %w", err)
	}
	return saved, nil
}

func (s *authService) removeFile(ctx context.Context, key string) {
	if err := s.files.Delete(ctx, key); err != nil {
		s.log.Warn("remove orphaned upload", zap.String("key", key), zap.Error(err))
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// publish emits an event and only logs failures.
func publish(ctx context.Context, p events.Publisher, log *zap.Logger, subject string, payload any) {
	if err := p.Publish(ctx, subject, payload); err != nil {
		log.Warn("publish event", zap.String("subject", subject), zap.Error(err))
	}
}
