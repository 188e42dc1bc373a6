package services

import (
	"fmt"
	"log"
	"sync"

	"github.com/authorizerdev/authorizer-go"
	"github.com/liviin/homecare-api/internal/config"
	"github.com/liviin/homecare-api/internal/utils"
)

// AuthService validates session cookies against the external Authorizer
// instance. One instance is constructed per process and injected into the
// auth middleware; the underlying client is created lazily on the first
// authenticated request because it needs the request host for its redirect
// URL.
type AuthService struct {
	cfg    *config.Config
	once   sync.Once
	client *authorizer.AuthorizerClient
	initEr error
}

// NewAuthService builds an auth service from configuration.
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// init creates the Authorizer client on first use.
func (a *AuthService) init(requestProtocol, requestHost string) error {
	a.once.Do(func() {
		if err := utils.PingAuthorizer(a.cfg.AuthzURL); err != nil {
			a.initEr = fmt.Errorf("authorizer ping failed: %w", err)
			return
		}

		redirectURL := fmt.Sprintf("%s://%s", requestProtocol, requestHost)
		log.Printf("Initializing Authorizer: authorizerURL=%s, clientID=%s, redirectURL=%s",
			a.cfg.AuthzURL, a.cfg.AuthzClientID, redirectURL)

		client, err := authorizer.NewAuthorizerClient(a.cfg.AuthzClientID, a.cfg.AuthzURL, redirectURL, nil)
		if err != nil {
			a.initEr = fmt.Errorf("failed to create authorizer client: %w", err)
			return
		}
		a.client = client
	})
	return a.initEr
}

// ValidateSession validates a session cookie for the given roles and
// returns the session user data.
func (a *AuthService) ValidateSession(requestProtocol, requestHost, cookie string, roles []string) (map[string]interface{}, error) {
	if err := a.init(requestProtocol, requestHost); err != nil {
		return nil, err
	}

	// Convert roles to []*string
	rolesPtrs := make([]*string, len(roles))
	for i := range roles {
		rolesPtrs[i] = &roles[i]
	}

	res, err := a.client.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
		Roles:  rolesPtrs,
	})
	if err != nil {
		return nil, fmt.Errorf("session validation failed: %w", err)
	}

	if res == nil || !res.IsValid {
		return nil, fmt.Errorf("session is not valid")
	}

	return map[string]interface{}{
		"is_valid": res.IsValid,
		"user":     res.User,
	}, nil
}
