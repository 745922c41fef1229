package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/shop-auth-service/internal/auth"
	"github.com/spec-kit/shop-auth-service/internal/config"
	"github.com/spec-kit/shop-auth-service/internal/domain"
	"github.com/spec-kit/shop-auth-service/internal/persistence"
	"github.com/spec-kit/shop-auth-service/internal/repository"
	apperrors "github.com/spec-kit/shop-auth-service/pkg/util"
)

// authorizationScopes is the fixed scope set requested from Shopify.
const authorizationScopes = "read_orders,read_customers"

// ShopifyService bridges the Shopify OAuth flow into the local session
// model. The three stages (authorization URL, code exchange, identity
// resolution) are stateless; each callback carries all needed context in the
// code and shop parameters, so a failed exchange never leaves anything to
// clean up.
type ShopifyService struct {
	cfg        config.ShopifyConfig
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	tokenTTL   time.Duration
	tokenCache *persistence.ProviderTokenCache
	httpClient *http.Client
	logger     *zap.Logger

	// shopBaseURL builds the provider origin for a shop domain. Overridden
	// in tests to point at a stub server.
	shopBaseURL func(shopDomain string) string
}

// ShopifyDependencies encapsulates collaborator requirements.
type ShopifyDependencies struct {
	UserRepo   repository.UserRepository
	TokenMgr   *auth.TokenManager
	TokenCache *persistence.ProviderTokenCache
	Logger     *zap.Logger
}

// NewShopifyService builds the service.
func NewShopifyService(cfg config.Config, deps ShopifyDependencies) *ShopifyService {
	return &ShopifyService{
		cfg:        cfg.Shopify,
		users:      deps.UserRepo,
		tokenMgr:   deps.TokenMgr,
		tokenTTL:   cfg.Auth.ShopifyTokenTTL,
		tokenCache: deps.TokenCache,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     deps.Logger,
		shopBaseURL: func(shopDomain string) string {
			return "https://" + shopDomain
		},
	}
}

// AuthorizationURL builds the provider authorization URL for a shop. No
// network call is made; the only failure mode is missing configuration.
func (s *ShopifyService) AuthorizationURL(shopDomain string) (string, error) {
	if shopDomain == "" {
		return "", apperrors.ErrMissingParameters
	}
	if s.cfg.ClientID == "" || s.cfg.CallbackURL == "" {
		return "", apperrors.ErrConfigMissing
	}

	query := url.Values{}
	query.Set("client_id", s.cfg.ClientID)
	query.Set("scope", authorizationScopes)
	query.Set("redirect_uri", s.cfg.CallbackURL)

	return fmt.Sprintf("%s/admin/oauth/authorize?%s", s.shopBaseURL(shopDomain), query.Encode()), nil
}

// ExchangeCode trades an authorization code for a provider access token.
// Any transport error or non-success response maps to the same exchange
// failure; there is no retry, the end user restarts the flow instead.
func (s *ShopifyService) ExchangeCode(ctx context.Context, shopDomain, code string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"client_id":     s.cfg.ClientID,
		"client_secret": s.cfg.ClientSecret,
		"code":          code,
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrProviderExchange, err)
	}

	endpoint := s.shopBaseURL(shopDomain) + "/admin/oauth/access_token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrProviderExchange, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("shopify code exchange failed", zap.String("shop", shopDomain), zap.Error(err))
		return "", apperrors.Wrap(apperrors.ErrProviderExchange, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Warn("shopify code exchange rejected",
			zap.String("shop", shopDomain),
			zap.Int("status", resp.StatusCode),
		)
		return "", apperrors.Wrap(apperrors.ErrProviderExchange, fmt.Errorf("token endpoint status %d", resp.StatusCode))
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", apperrors.Wrap(apperrors.ErrProviderExchange, err)
	}
	if body.AccessToken == "" {
		return "", apperrors.Wrap(apperrors.ErrProviderExchange, fmt.Errorf("empty access token"))
	}
	return body.AccessToken, nil
}

// HandleCallback runs the full callback flow: exchange the code, resolve the
// shop's email, find or create the local account, and issue a long-lived
// session token. Parameter validation happens before any network call.
func (s *ShopifyService) HandleCallback(ctx context.Context, shopDomain, code string) (string, time.Time, error) {
	if shopDomain == "" || code == "" {
		return "", time.Time{}, apperrors.ErrMissingParameters
	}

	accessToken, err := s.ExchangeCode(ctx, shopDomain, code)
	if err != nil {
		return "", time.Time{}, err
	}

	if err := s.tokenCache.Put(ctx, shopDomain, accessToken); err != nil {
		s.logger.Warn("failed to cache provider token", zap.String("shop", shopDomain), zap.Error(err))
	}

	email, err := s.fetchShopEmail(ctx, shopDomain, accessToken)
	if err != nil {
		return "", time.Time{}, err
	}

	user, err := s.findOrCreateUser(ctx, shopDomain, email)
	if err != nil {
		return "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Issue(user.ID, user.Email, user.Role, s.tokenTTL)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// fetchShopEmail resolves the external identity by reading the shop profile
// with the freshly exchanged access token.
func (s *ShopifyService) fetchShopEmail(ctx context.Context, shopDomain, accessToken string) (string, error) {
	endpoint := fmt.Sprintf("%s/admin/api/%s/shop.json", s.shopBaseURL(shopDomain), s.cfg.APIVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrProviderExchange, err)
	}
	req.Header.Set("X-Shopify-Access-Token", accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("shopify profile fetch failed", zap.String("shop", shopDomain), zap.Error(err))
		return "", apperrors.Wrap(apperrors.ErrProviderExchange, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperrors.Wrap(apperrors.ErrProviderExchange, fmt.Errorf("shop endpoint status %d", resp.StatusCode))
	}

	var body struct {
		Shop struct {
			Email string `json:"email"`
		} `json:"shop"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", apperrors.Wrap(apperrors.ErrProviderExchange, err)
	}
	if body.Shop.Email == "" {
		return "", apperrors.Wrap(apperrors.ErrProviderExchange, fmt.Errorf("shop profile missing email"))
	}
	return body.Shop.Email, nil
}

// findOrCreateUser provisions the local account for an external identity.
// No invite is required on this path. New accounts are members, active, and
// carry no password hash, so local login rejects them. Persistence failures
// are fatal to the flow and never retried.
func (s *ShopifyService) findOrCreateUser(ctx context.Context, shopDomain, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if err != pgx.ErrNoRows {
		return nil, apperrors.Wrap(apperrors.ErrProviderExchange, err)
	}

	user = &domain.User{
		ShopID: &shopDomain,
		Email:  email,
		Role:   domain.RoleMember,
		Active: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			// Concurrent callback for the same shop; the other request won.
			return s.lookupAfterRace(ctx, email)
		}
		return nil, apperrors.Wrap(apperrors.ErrProviderExchange, err)
	}
	return user, nil
}

func (s *ShopifyService) lookupAfterRace(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrProviderExchange, err)
	}
	return user, nil
}
