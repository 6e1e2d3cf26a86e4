package commands

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/internal/config"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/clients/gmailclient"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/clients/mapsclient"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/clients/sheetsclient"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/services"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/db"
)

// AppContext holds the application dependencies shared across all commands.
// Google clients are created on first use so commands that do not need them
// never trigger the OAuth flow.
type AppContext struct {
	Env      string
	Cfg      *config.Config
	Database db.Database
	Migrator Migrator
	Logger   *zap.Logger
	Ctx      context.Context

	mu           sync.Mutex
	oauthCfg     *config.OAuthClientConfig
	sheetsClient *sheetsclient.Client
	gmailClient  *gmailclient.Client
	mapsClient   *mapsclient.Client
}

func (app *AppContext) oauthConfig() (*config.OAuthClientConfig, error) {
	if app.oauthCfg != nil {
		return app.oauthCfg, nil
	}
	app.Logger.Info("Loading OAuth client configuration")
	cfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}
	app.oauthCfg = cfg
	return cfg, nil
}

// Sheets returns the Google Sheets client, authenticating if needed
func (app *AppContext) Sheets() (*sheetsclient.Client, error) {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.sheetsLocked()
}

func (app *AppContext) sheetsLocked() (*sheetsclient.Client, error) {
	if app.sheetsClient != nil {
		return app.sheetsClient, nil
	}
	oauthCfg, err := app.oauthConfig()
	if err != nil {
		return nil, err
	}

	app.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	app.sheetsClient = client
	return client, nil
}

// Gmail returns the Gmail client, or nil when no sender is configured.
// It shares the Sheets client's OAuth token.
func (app *AppContext) Gmail() (*gmailclient.Client, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.gmailClient != nil || app.Cfg.GmailSender == "" {
		return app.gmailClient, nil
	}
	// Authenticate through Sheets to get the shared token
	sheets, err := app.sheetsLocked()
	if err != nil {
		return nil, err
	}

	app.Logger.Info("Initializing gmail client")
	client, err := gmailclient.NewClient(app.Ctx, app.oauthCfg, sheets.Token(), app.Cfg.GmailSender)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}
	app.gmailClient = client
	return client, nil
}

// Maps returns the distance client, or nil when no API key is configured
func (app *AppContext) Maps() (*mapsclient.Client, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.mapsClient != nil || app.Cfg.MapsAPIKey == "" {
		return app.mapsClient, nil
	}
	client, err := mapsclient.NewClient(app.Cfg.MapsAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	app.mapsClient = client
	return client, nil
}

// Collaborators builds the distance and notification collaborators.
// Unconfigured ones are left nil. Notification is attached only when notify is set.
func (app *AppContext) Collaborators(notify bool) (services.AssignCollaborators, error) {
	var collab services.AssignCollaborators

	// Distance lookup
	maps, err := app.Maps()
	if err != nil {
		return collab, err
	}
	if maps != nil {
		collab.Distance = maps
	} else {
		app.Logger.Debug("No mapsAPIKey configured, distance lookups disabled")
	}

	if !notify {
		return collab, nil
	}
	// Notifications
	gmail, err := app.Gmail()
	if err != nil {
		return collab, err
	}
	if gmail != nil {
		collab.Notifier = gmail
	} else {
		app.Logger.Debug("No gmailSender configured, notifications disabled")
	}
	return collab, nil
}
