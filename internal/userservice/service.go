// Package userservice manages business logic layer of users.
package userservice

import (
	"context"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/pkg/errorspkg"
	"github.com/go-petr/pet-wallet/pkg/passpkg"
	"github.com/go-petr/pet-wallet/pkg/tokenpkg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// MaxImageSize is the largest accepted profile image in bytes.
const MaxImageSize = 2 << 20

// ProfilesPath is the public path of profile images below the uploads directory.
const ProfilesPath = "/uploads/profiles/"

var imageExtensions = map[string]string{
	"image/jpeg": ".jpeg",
	"image/png":  ".png",
}

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Update(ctx context.Context, arg domain.UpdateUserParams) (domain.User, error)
	UpdateProfileImage(ctx context.Context, id int64, image string) (domain.User, error)
}

// Config holds the settings of the user service.
type Config struct {
	TokenDuration time.Duration
	// PublicURL is the base URL profile image links are built on.
	PublicURL string
	// ProfileDir is the directory of fs profile images are stored in.
	ProfileDir string
}

// Service facilitates user service layer logic.
type Service struct {
	repo   Repo
	tokens tokenpkg.Maker
	fs     afero.Fs
	config Config
}

// New returns user service struct to manage user business logic.
func New(ur Repo, tm tokenpkg.Maker, fs afero.Fs, config Config) *Service {
	return &Service{
		repo:   ur,
		tokens: tm,
		fs:     fs,
		config: config,
	}
}

// RegisterParams is the input data to register a user.
type RegisterParams struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// Profile returns the public view of u.
func (s *Service) Profile(u domain.User) domain.Profile {
	p := domain.Profile{
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}

	if u.ProfileImage != "" {
		p.ProfileImage = strings.TrimRight(s.config.PublicURL, "/") + ProfilesPath + u.ProfileImage
	}

	return p
}

// Register creates the user with a hashed password.
func (s *Service) Register(ctx context.Context, arg RegisterParams) (domain.Profile, error) {
	l := zerolog.Ctx(ctx)

	hashedPassword, err := passpkg.Hash(arg.Password)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Profile{}, errorspkg.ErrInternal
	}

	u, err := s.repo.Create(ctx, domain.CreateUserParams{
		Email:          strings.ToLower(arg.Email),
		FirstName:      arg.FirstName,
		LastName:       arg.LastName,
		HashedPassword: hashedPassword,
	})
	if err != nil {
		return domain.Profile{}, err
	}

	return s.Profile(u), nil
}

// Login checks the credentials and returns a new access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	l := zerolog.Ctx(ctx)

	u, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", domain.ErrWrongCredentials
		}

		return "", err
	}

	if err := passpkg.Check(password, u.HashedPassword); err != nil {
		l.Info().Err(err).Int64("user_id", u.ID).Msg("wrong password")
		return "", domain.ErrWrongCredentials
	}

	token, _, err := s.tokens.CreateToken(u.ID, u.Email, s.config.TokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", errorspkg.ErrInternal
	}

	return token, nil
}

// GetProfile returns the profile of the user.
func (s *Service) GetProfile(ctx context.Context, id int64) (domain.Profile, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Profile{}, err
	}

	return s.Profile(u), nil
}

// UpdateProfile changes the non-empty name fields of the user.
func (s *Service) UpdateProfile(ctx context.Context, arg domain.UpdateUserParams) (domain.Profile, error) {
	u, err := s.repo.Update(ctx, arg)
	if err != nil {
		return domain.Profile{}, err
	}

	return s.Profile(u), nil
}

// UpdateProfileImage stores a JPEG or PNG image of at most MaxImageSize bytes and
// makes it the user's profile image. The previous image file is removed.
func (s *Service) UpdateProfileImage(ctx context.Context, id int64, image []byte) (domain.Profile, error) {
	l := zerolog.Ctx(ctx)

	if len(image) == 0 || len(image) > MaxImageSize {
		return domain.Profile{}, domain.ErrInvalidImage
	}

	ext, ok := imageExtensions[http.DetectContentType(image)]
	if !ok {
		return domain.Profile{}, domain.ErrInvalidImage
	}

	old, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Profile{}, err
	}

	if err := s.fs.MkdirAll(s.config.ProfileDir, 0o755); err != nil {
		l.Error().Err(err).Send()
		return domain.Profile{}, errorspkg.ErrInternal
	}

	name := uuid.NewString() + ext
	file := path.Join(s.config.ProfileDir, name)

	if err := afero.WriteFile(s.fs, file, image, 0o644); err != nil {
		l.Error().Err(err).Send()
		return domain.Profile{}, errorspkg.ErrInternal
	}

	u, err := s.repo.UpdateProfileImage(ctx, id, name)
	if err != nil {
		if rmErr := s.fs.Remove(file); rmErr != nil {
			l.Error().Err(rmErr).Send()
		}

		return domain.Profile{}, err
	}

	if old.ProfileImage != "" {
		if err := s.fs.Remove(path.Join(s.config.ProfileDir, old.ProfileImage)); err != nil {
			l.Warn().Err(err).Str("file", old.ProfileImage).Msg("cannot remove old profile image")
		}
	}

	return s.Profile(u), nil
}
