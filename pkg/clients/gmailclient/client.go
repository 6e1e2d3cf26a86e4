package gmailclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/internal/config"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/utils"
)

// Client sends assignment notifications through the Gmail API
type Client struct {
	service      *gmail.Service
	sender       string
	interval     time.Duration
	lastSendTime time.Time
	sendMutex    sync.Mutex
}

// NewClient creates a Gmail client from a token that already carries the gmail.send scope.
// sender, when set, is used as the From header; otherwise Gmail uses the authorized account.
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, token *oauth2.Token, sender string) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	// Reuse the shared token; it already has the send scope
	service, err := gmail.NewService(ctx, option.WithHTTPClient(oauthConfig.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return newClient(service, sender), nil
}

func newClient(service *gmail.Service, sender string) *Client {
	return &Client{
		service:  service,
		sender:   sender,
		interval: EMAIL_INTERVAL,
	}
}
