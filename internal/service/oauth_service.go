package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	config "github.com/postpilothq/postpilot/configs"
	"github.com/postpilothq/postpilot/internal/models"
	"github.com/postpilothq/postpilot/internal/repository"
	"github.com/postpilothq/postpilot/pkg/utils"
	"golang.org/x/oauth2"
)

// pkceTTL bounds how long a started connect flow stays redeemable.
const pkceTTL = 10 * time.Minute

type OAuthService interface {
	BeginConnect(ctx context.Context, platform string) (string, error)
	CompleteConnect(ctx context.Context, platform, state string) (string, error)
}

type oauthService struct {
	cfg  config.Config
	pk   repository.PKCERepository
	apps map[string]*oauth2.Config
}

func NewOAuthService(cfg config.Config, pk repository.PKCERepository) OAuthService {
	// Instagram and TikTok accounts are linked through the external
	// posting aggregator, not a first-party OAuth app, so only the
	// direct-connect platforms appear here.
	apps := map[string]*oauth2.Config{
		models.PlatformTwitter: {
			ClientID:     cfg.Twitter.ClientID,
			ClientSecret: cfg.Twitter.ClientSecret,
			RedirectURL:  cfg.Twitter.RedirectURI,
			Scopes:       []string{"tweet.read", "tweet.write", "users.read", "offline.access"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://twitter.com/i/oauth2/authorize",
				TokenURL: "https://api.twitter.com/2/oauth2/token",
			},
		},
		models.PlatformLinkedIn: {
			ClientID:     cfg.LinkedIn.ClientID,
			ClientSecret: cfg.LinkedIn.ClientSecret,
			RedirectURL:  cfg.LinkedIn.RedirectURI,
			Scopes:       []string{"openid", "profile", "w_member_social"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://www.linkedin.com/oauth/v2/authorization",
				TokenURL: "https://www.linkedin.com/oauth/v2/accessToken",
			},
		},
		models.PlatformPinterest: {
			ClientID:     cfg.Pinterest.ClientID,
			ClientSecret: cfg.Pinterest.ClientSecret,
			RedirectURL:  cfg.Pinterest.RedirectURI,
			Scopes:       []string{"boards:read", "pins:read", "pins:write"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://www.pinterest.com/oauth",
				TokenURL: "https://api.pinterest.com/v5/oauth/token",
			},
		},
	}

	return &oauthService{
		cfg:  cfg,
		pk:   pk,
		apps: apps,
	}
}

// BeginConnect builds the PKCE authorization URL for a platform and
// parks the verifier, encrypted, under the state key. Token exchange
// itself is handled by the external posting functions.
func (s *oauthService) BeginConnect(ctx context.Context, platform string) (string, error) {
	app, ok := s.apps[platform]
	if !ok {
		err := errors.New("unsupported connect platform: " + platform)
		slog.Info(err.Error())
		return "", err
	}

	state, err := utils.GenerateRandomKey(16)
	if err != nil {
		slog.Error(err.Error())
		return "", err
	}

	verifier := oauth2.GenerateVerifier()

	encrypted, err := utils.Encrypt([]byte(verifier), []byte(s.cfg.SecretKey))
	if err != nil {
		slog.Error(err.Error())
		return "", err
	}

	entry := &models.PKCEEntry{
		StateKey:  state,
		Verifier:  encrypted,
		ExpiresAt: time.Now().Add(pkceTTL),
	}
	if err := s.pk.Save(ctx, entry); err != nil {
		return "", fmt.Errorf("error saving verifier: %w", err)
	}

	return app.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier)), nil
}

// CompleteConnect redeems the one-time verifier for the callback. The
// read is destructive: replaying a state key fails.
func (s *oauthService) CompleteConnect(ctx context.Context, platform, state string) (string, error) {
	if _, ok := s.apps[platform]; !ok {
		err := errors.New("unsupported connect platform: " + platform)
		slog.Info(err.Error())
		return "", err
	}

	encrypted, found, err := s.pk.Take(ctx, state)
	if err != nil {
		return "", fmt.Errorf("error retrieving verifier: %w", err)
	}
	if !found {
		err = errors.New("verifier is missing or expired")
		slog.Info(err.Error())
		return "", err
	}

	verifier, err := utils.Decrypt(encrypted, []byte(s.cfg.SecretKey))
	if err != nil {
		slog.Error(err.Error())
		return "", err
	}

	return verifier, nil
}
