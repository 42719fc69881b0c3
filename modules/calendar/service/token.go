package service

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vfd-portal/core/cache"
	"vfd-portal/core/constants"
	"vfd-portal/core/errors"
	"vfd-portal/core/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

const (
	jwtBearerGrantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	assertionLifetime  = time.Hour
	// cached tokens are dropped this long before Google considers them expired
	tokenCacheMargin = time.Minute
)

// buildAssertion signs the service-account JWT exchanged for an access token.
func buildAssertion(key *rsa.PrivateKey, email, scope, audience string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"iss":   email,
		"sub":   email,
		"scope": scope,
		"aud":   audience,
		"iat":   now.Unix(),
		"exp":   now.Add(assertionLifetime).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
}

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	ExpiresIn        int64  `json:"expires_in"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

type cachedToken struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	Expiry      time.Time `json:"expiry"`
}

// serviceAccountSource mints access tokens through the jwt-bearer grant. A
// shared cache, when present, lets several instances reuse one token.
type serviceAccountSource struct {
	email      string
	scope      string
	tokenURL   string
	key        *rsa.PrivateKey
	httpClient *http.Client
	cache      cache.Cache
	now        func() time.Time
}

var _ oauth2.TokenSource = (*serviceAccountSource)(nil)

func (s *serviceAccountSource) cacheKey() string {
	return "gcal:token:" + s.email
}

func (s *serviceAccountSource) Token() (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
	defer cancel()

	if tok := s.fromCache(ctx); tok != nil {
		return tok, nil
	}

	tok, err := s.exchange(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, tok)
	return tok, nil
}

func (s *serviceAccountSource) fromCache(ctx context.Context) *oauth2.Token {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cacheKey())
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Warn("CalendarBridge:Token:CacheGet:Error", err)
		}
		return nil
	}
	var c cachedToken
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		logger.Warn("CalendarBridge:Token:CacheDecode:Error", err)
		if err := s.cache.Del(ctx, s.cacheKey()); err != nil {
			logger.Warn("CalendarBridge:Token:CacheDel:Error", err)
		}
		return nil
	}
	if !c.Expiry.After(s.now().Add(tokenCacheMargin)) {
		return nil
	}
	return &oauth2.Token{AccessToken: c.AccessToken, TokenType: c.TokenType, Expiry: c.Expiry}
}

func (s *serviceAccountSource) toCache(ctx context.Context, tok *oauth2.Token) {
	if s.cache == nil {
		return
	}
	ttl := tok.Expiry.Sub(s.now()) - tokenCacheMargin
	if ttl <= 0 {
		return
	}
	raw, err := json.Marshal(cachedToken{AccessToken: tok.AccessToken, TokenType: tok.TokenType, Expiry: tok.Expiry})
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(), string(raw), ttl); err != nil {
		logger.Warn("CalendarBridge:Token:CacheSet:Error", err)
	}
}

func (s *serviceAccountSource) exchange(ctx context.Context) (*oauth2.Token, error) {
	now := s.now()
	assertion, err := buildAssertion(s.key, s.email, s.scope, s.tokenURL, now)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrExternalCalendar, "failed to sign service account assertion", err)
	}

	form := url.Values{}
	form.Set("grant_type", jwtBearerGrantType)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrExternalCalendar, "failed to build token request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrExternalCalendar, "token request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrExternalCalendar, "failed to read token response", err)
	}

	var tr tokenResponse
	_ = json.Unmarshal(body, &tr)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := tr.ErrorDescription
		if msg == "" {
			msg = tr.Error
		}
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return nil, errors.NewAppError(errors.ErrExternalCalendar,
			fmt.Sprintf("Failed to get access token: %s", msg), nil)
	}
	if tr.AccessToken == "" {
		return nil, errors.NewAppError(errors.ErrExternalCalendar, "Failed to get access token: empty access_token", nil)
	}

	expiresIn := time.Duration(tr.ExpiresIn) * time.Second
	if expiresIn <= 0 {
		expiresIn = assertionLifetime
	}
	tokenType := tr.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	return &oauth2.Token{
		AccessToken: tr.AccessToken,
		TokenType:   tokenType,
		Expiry:      now.Add(expiresIn),
	}, nil
}
