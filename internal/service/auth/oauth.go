package auth

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/doi-radiologia/portal-api/internal/config"
	"github.com/doi-radiologia/portal-api/internal/model"
	"github.com/doi-radiologia/portal-api/pkg/errors"
)

const stateTTL = 10 * time.Minute

// OAuthClient drives the authorization-code flow against the external
// provider. State values live in a TTL cache so the callback can reject
// forged requests.
type OAuthClient struct {
	cfg    config.OAuthConfig
	http   *resty.Client
	states *cache.Cache
}

func NewOAuthClient(cfg config.OAuthConfig) *OAuthClient {
	return &OAuthClient{
		cfg:    cfg,
		http:   resty.New().SetTimeout(10 * time.Second),
		states: cache.New(stateTTL, 2*stateTTL),
	}
}

// AuthURL builds the provider redirect for the sign-in button and
// remembers the state value.
func (c *OAuthClient) AuthURL() string {
	state := uuid.New().String()
	c.states.SetDefault(state, true)

	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURL)
	q.Set("response_type", "code")
	q.Set("scope", "openid email profile")
	q.Set("state", state)

	return c.cfg.AuthURL + "?" + q.Encode()
}

// ConsumeState validates and burns a state value.
func (c *OAuthClient) ConsumeState(state string) bool {
	if _, ok := c.states.Get(state); !ok {
		return false
	}
	c.states.Delete(state)
	return true
}

type tokenPayload struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Error       string `json:"error"`
}

// Exchange trades an authorization code for the provider's access token.
func (c *OAuthClient) Exchange(ctx context.Context, code string) (string, error) {
	var payload tokenPayload
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "authorization_code",
			"code":          code,
			"client_id":     c.cfg.ClientID,
			"client_secret": c.cfg.ClientSecret,
			"redirect_uri":  c.cfg.RedirectURL,
		}).
		SetResult(&payload).
		Post(c.cfg.TokenURL)
	if err != nil {
		return "", fmt.Errorf("token exchange request failed: %w", err)
	}
	if resp.IsError() || payload.AccessToken == "" {
		return "", fmt.Errorf("token exchange rejected: %s %s", resp.Status(), payload.Error)
	}
	return payload.AccessToken, nil
}

// UserInfo fetches the identity behind a provider access token.
func (c *OAuthClient) UserInfo(ctx context.Context, accessToken string) (*model.OAuthUserInfo, error) {
	var info model.OAuthUserInfo
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&info).
		Get(c.cfg.UserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	if resp.IsError() || info.Email == "" {
		return nil, fmt.Errorf("userinfo rejected: %s", resp.Status())
	}
	return &info, nil
}

// OAuthStartURL returns the provider redirect for the sign-in button.
func (s *Service) OAuthStartURL() string {
	return s.oauth.AuthURL()
}

// HandleOAuthCallback exchanges the code, finds or creates the profile
// (role cliente, name best-effort from the provider), and issues a
// role-routed session.
func (s *Service) HandleOAuthCallback(ctx context.Context, state, code string) (*model.TokenResponse, error) {
	if !s.oauth.ConsumeState(state) {
		return nil, errors.Auth("invalid oauth state", nil)
	}

	providerToken, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Auth("auth_failed", err)
	}

	info, err := s.oauth.UserInfo(ctx, providerToken)
	if err != nil {
		return nil, errors.Auth("auth_failed", err)
	}

	profile, err := s.profileRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		profile = oauthProfile(info)
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, errors.Persistence("failed to create oauth profile", err)
		}
	}

	return s.issueSession(ctx, profile)
}

// oauthProfile builds a cliente profile from provider metadata. OAuth
// users start without a DNI, so their study list is empty until the
// clinic records one.
func oauthProfile(info *model.OAuthUserInfo) *model.Profile {
	nombre := ""
	apellido := ""
	if parts := strings.Fields(info.FullName); len(parts) > 0 {
		nombre = parts[0]
		apellido = strings.Join(parts[1:], " ")
	}

	return &model.Profile{
		ID:            uuid.New(),
		Email:         info.Email,
		Nombre:        nombre,
		Apellido:      apellido,
		DNI:           "",
		Role:          model.RoleCliente,
		EmailVerified: true,
	}
}
