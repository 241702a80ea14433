package github

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"
	"golang.org/x/net/context"

	"github.com/photostack/photostack/interfaces"
	"github.com/photostack/photostack/internal/config"
	er "github.com/photostack/photostack/internal/errors"
	"github.com/photostack/photostack/internal/tracing"
)

// GitHub OAuth web flow: https://docs.github.com/en/apps/oauth-apps
type githubService struct {
	cfg    *config.GithubOAuthConfig
	client *http.Client
}

func NewGithubService(cfg *config.GithubOAuthConfig) interfaces.GithubService {
	return &githubService{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// ExchangeCode trades the opaque code for an access token, then fetches the
// caller's profile with it. Any provider error surfaces before a single store
// write happens.
func (s *githubService) ExchangeCode(ctx context.Context, code string) (*interfaces.GithubProfile, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "GithubService.ExchangeCode")
	defer span.Finish()
	tracing.TagComponentService(span)

	// validate if github oauth is configured
	if s.cfg.ClientID == "" || s.cfg.ClientSecret == "" {
		err := errors.New("GitHub OAuth configuration is missing")
		tracing.TraceErr(span, err)
		return nil, err
	}

	accessToken, err := s.requestAccessToken(ctx, code)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	profile, err := s.requestProfile(ctx, accessToken)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	tracing.TagUserLogin(span, profile.Login)

	return profile, nil
}

func (s *githubService) requestAccessToken(ctx context.Context, code string) (string, error) {
	params := url.Values{}
	params.Add("client_id", s.cfg.ClientID)
	params.Add("client_secret", s.cfg.ClientSecret)
	params.Add("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.TokenURL, strings.NewReader(params.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", errors.Wrap(er.ErrUpstreamAuth, err.Error())
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(er.ErrUpstreamAuth, "failed to read token response")
	}

	var result struct {
		AccessToken      string `json:"access_token"`
		Message          string `json:"message"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err = json.Unmarshal(responseBody, &result); err != nil {
		return "", errors.Wrap(er.ErrUpstreamAuth, "failed to parse token response")
	}
	if result.Message != "" {
		return "", errors.Wrap(er.ErrUpstreamAuth, result.Message)
	}
	if result.Error != "" {
		return "", errors.Wrap(er.ErrUpstreamAuth, result.ErrorDescription)
	}
	if result.AccessToken == "" {
		return "", errors.Wrap(er.ErrUpstreamAuth, "no access token in response")
	}
	return result.AccessToken, nil
}

func (s *githubService) requestProfile(ctx context.Context, accessToken string) (*interfaces.GithubProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.UserURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(er.ErrUpstreamAuth, err.Error())
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(er.ErrUpstreamAuth, "failed to read profile response")
	}

	var result struct {
		Login     string `json:"login"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
		Message   string `json:"message"`
	}
	if err = json.Unmarshal(responseBody, &result); err != nil {
		return nil, errors.Wrap(er.ErrUpstreamAuth, "failed to parse profile response")
	}
	if result.Message != "" {
		return nil, errors.Wrap(er.ErrUpstreamAuth, result.Message)
	}
	if result.Login == "" {
		return nil, errors.Wrap(er.ErrUpstreamAuth, "no login in profile response")
	}

	if span := opentracing.SpanFromContext(ctx); span != nil {
		span.LogFields(tracingLog.String("github.login", result.Login))
	}

	return &interfaces.GithubProfile{
		Login:       result.Login,
		AccessToken: accessToken,
		Name:        result.Name,
		AvatarURL:   result.AvatarURL,
	}, nil
}
