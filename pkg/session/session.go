// Package session retains the logged-in user's profile client-side. There is
// no token: presence of a stored profile is "logged in" until Logout.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("quickbite/pkg/session")

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already in use")
	ErrNotLoggedIn        = errors.New("no stored profile")
)

type Profile struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	MobileNo  string    `json:"mobileNo"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store persists the profile across sessions, mirroring the cart Store shape.
type Store interface {
	Load() (*Profile, error)
	Save(profile *Profile) error
	Clear() error
}

type RegisterParams struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	MobileNo        string `json:"mobileNo"`
	Email           string `json:"email"`
	Address         string `json:"address"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type Client struct {
	baseURL string
	client  *http.Client
	store   Store
}

func NewClient(baseURL string, store Store) *Client {
	return &Client{baseURL: baseURL, client: otelhttp.DefaultClient, store: store}
}

// Login authenticates and stores the returned profile. Email-not-found and
// wrong-password are indistinguishable.
func (s *Client) Login(c context.Context, email string, password string) (*Profile, error) {
	c, span := tracer.Start(c, "session Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str("tag", "session Login").
		Str("email", email).
		Logger()

	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("failed marshaling login request with error=%w", err)
	}

	logger = logger.With().Str("process", "sending login request").Logger()
	logger.Info().Msg("sending login request")
	req, err := http.NewRequestWithContext(
		c,
		http.MethodPost,
		s.baseURL+"/api/login",
		bytes.NewBuffer(body),
	)
	if err != nil {
		return nil, fmt.Errorf("failed creating login request with error=%w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		err = fmt.Errorf("failed sending login request with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		logger.Info().Msg("login rejected")
		return nil, ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("login endpoint returned status=%d", resp.StatusCode)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	respBody := struct {
		User Profile `json:"user"`
	}{}
	if err = json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		err = fmt.Errorf("failed decoding login response with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("login successful")

	if err = s.store.Save(&respBody.User); err != nil {
		err = fmt.Errorf("failed storing profile with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	return &respBody.User, nil
}

// Register creates an account and returns the new user id. There is no
// auto-login; the caller logs in separately.
func (s *Client) Register(c context.Context, param RegisterParams) (string, error) {
	c, span := tracer.Start(c, "session Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str("tag", "session Register").
		Str("email", param.Email).
		Logger()

	body, err := json.Marshal(param)
	if err != nil {
		return "", fmt.Errorf("failed marshaling register request with error=%w", err)
	}

	logger = logger.With().Str("process", "sending register request").Logger()
	logger.Info().Msg("sending register request")
	req, err := http.NewRequestWithContext(
		c,
		http.MethodPost,
		s.baseURL+"/api/register",
		bytes.NewBuffer(body),
	)
	if err != nil {
		return "", fmt.Errorf("failed creating register request with error=%w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		err = fmt.Errorf("failed sending register request with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	defer resp.Body.Close()

	respBody := struct {
		Message string `json:"message"`
		UserID  string `json:"userId"`
	}{}
	decodeErr := json.NewDecoder(resp.Body).Decode(&respBody)

	if resp.StatusCode == http.StatusBadRequest {
		if respBody.Message == ErrEmailTaken.Error() {
			logger.Info().Msg("email already in use")
			return "", ErrEmailTaken
		}
		err = fmt.Errorf("register rejected with message=%s", respBody.Message)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	if resp.StatusCode != http.StatusCreated {
		err = fmt.Errorf("register endpoint returned status=%d", resp.StatusCode)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	if decodeErr != nil {
		err = fmt.Errorf("failed decoding register response with error=%w", decodeErr)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().Msg("registered")

	return respBody.UserID, nil
}

// Current returns the stored profile, or ErrNotLoggedIn.
func (s *Client) Current() (*Profile, error) {
	profile, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed loading profile with error=%w", err)
	}
	if profile == nil {
		return nil, ErrNotLoggedIn
	}
	return profile, nil
}

// Logout discards the stored profile.
func (s *Client) Logout() error {
	return s.store.Clear()
}
