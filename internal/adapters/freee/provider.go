package freee

import (
	"context"
	"fmt"
	"net/http"

	"github.com/884js/freee-line-notifier/internal/core/domain"
	portsclients "github.com/884js/freee-line-notifier/internal/core/ports/clients"
	"golang.org/x/oauth2"
)

// freeeEndpoint is freee's OAuth2 endpoint set.
var freeeEndpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.secure.freee.co.jp/public_api/authorize",
	TokenURL: "https://accounts.secure.freee.co.jp/public_api/token",
}

// Provider builds accounting clients bound to a company's stored refresh
// token. Access tokens are minted and renewed by the oauth2 transport.
type Provider struct {
	oauthConfig *oauth2.Config
	baseURL     string
}

// ProviderOption is a functional option for configuring the provider
type ProviderOption func(*Provider)

// WithAPIBaseURL overrides the API base URL, for tests.
func WithAPIBaseURL(baseURL string) ProviderOption {
	return func(p *Provider) {
		p.baseURL = baseURL
	}
}

// WithTokenURL overrides the OAuth token endpoint, for tests.
func WithTokenURL(tokenURL string) ProviderOption {
	return func(p *Provider) {
		p.oauthConfig.Endpoint.TokenURL = tokenURL
	}
}

// NewProvider creates a provider for the given OAuth application credentials.
func NewProvider(clientID, clientSecret string, options ...ProviderOption) *Provider {
	p := &Provider{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     freeeEndpoint,
		},
		baseURL: defaultAPIBaseURL,
	}

	for _, option := range options {
		option(p)
	}

	return p
}

// Ensure Provider implements the AccountingProvider port
var _ portsclients.AccountingProvider = (*Provider)(nil)

// ClientFor returns a client whose transport exchanges the company's
// refresh token for access tokens as needed.
func (p *Provider) ClientFor(ctx context.Context, company domain.Company) (portsclients.AccountingClient, error) {
	if company.RefreshToken == "" {
		return nil, fmt.Errorf("company %d has no refresh token", company.FreeeCompanyID)
	}

	source := p.oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: company.RefreshToken})
	return &Client{
		httpClient: oauth2.NewClient(ctx, source),
		baseURL:    p.baseURL,
	}, nil
}

// NewClientWithHTTPClient builds a client over an explicit HTTP client,
// for tests that stub the API with httptest.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{httpClient: httpClient, baseURL: baseURL}
}
