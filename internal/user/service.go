package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	inErrors "quickbite/internal/errors"
	"quickbite/internal/log"
	"quickbite/internal/otel/trace"
)

type Service struct {
	repository Repository
}

func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// Register stores a new user with a bcrypt hash of the password. No session is
// started; the caller logs in separately.
func (s *Service) Register(c context.Context, param RegisterRequest) (string, error) {
	c, span := trace.Tracer.Start(c, "UserService Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Register").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "checking existing email").Logger()
	logger.Info().Msg("checking existing email")
	_, err := s.repository.FindByEmail(c, param.Email)
	if err == nil {
		err = inErrors.ErrEmailTaken
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	if !errors.Is(err, inErrors.ErrUserNotFound) {
		err = fmt.Errorf("failed checking existing email with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().Msg("email is available")

	logger = logger.With().Str(log.KeyProcess, "hashing password").Logger()
	logger.Info().Msg("hashing password")
	hashed, err := bcrypt.GenerateFromPassword([]byte(param.Password), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("failed hashing password with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().Msg("hashed password")

	logger = logger.With().Str(log.KeyProcess, "inserting user to database").Logger()
	logger.Info().Msg("inserting user to database")
	now := time.Now()
	id, err := s.repository.Insert(c, User{
		FirstName: param.FirstName,
		LastName:  param.LastName,
		MobileNo:  param.MobileNo,
		Email:     param.Email,
		Address:   param.Address,
		Password:  string(hashed),
		Cart:      []CartLine{},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		// The unique index can race the pre-check under concurrent registration.
		if errors.Is(err, inErrors.ErrEmailTaken) {
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return "", err
		}
		err = fmt.Errorf("failed inserting user to database with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().Msg("inserted user to database")

	return id.Hex(), nil
}

// Login verifies the credentials and returns the password-stripped profile.
// A missing email and a wrong password are indistinguishable to the caller.
func (s *Service) Login(c context.Context, param LoginRequest) (Profile, error) {
	c, span := trace.Tracer.Start(c, "UserService Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Login").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding user by email").Logger()
	logger.Info().Msg("finding user by email")
	user, err := s.repository.FindByEmail(c, param.Email)
	if err != nil {
		if errors.Is(err, inErrors.ErrUserNotFound) {
			logger.Info().Msg("user not found")
			return Profile{}, inErrors.ErrInvalidCredentials
		}
		err = fmt.Errorf("failed finding user by email with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Profile{}, err
	}
	logger.Info().Msg("found user by email")

	logger = logger.With().Str(log.KeyProcess, "verifying password").Logger()
	logger.Info().Msg("verifying password")
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(param.Password))
	if err != nil {
		logger.Info().Msg("password mismatch")
		return Profile{}, inErrors.ErrInvalidCredentials
	}
	logger.Info().Msg("verified password")

	return user.Profile(), nil
}

// UpdateCart persists the client cart mirror on the user document.
func (s *Service) UpdateCart(c context.Context, userId string, param UpdateCartRequest) error {
	c, span := trace.Tracer.Start(c, "UserService UpdateCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService UpdateCart").
		Str(log.KeyUserID, userId).
		Logger()

	id, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		err = fmt.Errorf("failed parsing userId=%s with error=%w", userId, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	lines := make([]CartLine, len(param.Cart))
	for i, line := range param.Cart {
		lines[i] = line.Line()
	}

	logger = logger.With().Str(log.KeyProcess, "updating cart mirror").Logger()
	logger.Info().Msg("updating cart mirror")
	err = s.repository.UpdateCart(c, id, lines)
	if err != nil {
		err = fmt.Errorf("failed updating cart mirror with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("updated cart mirror")

	return nil
}
