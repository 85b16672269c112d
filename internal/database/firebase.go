package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	appconfig "github.com/affordablebilliards/billiards_api/internal/config"
)

// NewFirebaseApp initialises the firebase-admin app shared by the Firestore
// document store and the Storage bucket. Credentials come either from a
// service account file or from the inline client email and private key.
func NewFirebaseApp(ctx context.Context, cfg *appconfig.FirebaseConfig) (*firebase.App, error) {
	if cfg == nil || !cfg.Configured() {
		return nil, errors.New("firebase credentials not configured")
	}

	var opt option.ClientOption
	if cfg.CredentialsFile != "" {
		opt = option.WithCredentialsFile(cfg.CredentialsFile)
	} else {
		creds, err := serviceAccountJSON(cfg)
		if err != nil {
			return nil, err
		}
		opt = option.WithCredentialsJSON(creds)
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.StorageBucket,
	}, opt)
	if err != nil {
		return nil, fmt.Errorf("firebase app init: %w", err)
	}
	return app, nil
}

func serviceAccountJSON(cfg *appconfig.FirebaseConfig) ([]byte, error) {
	sa := map[string]string{
		"type":         "service_account",
		"project_id":   cfg.ProjectID,
		"client_email": cfg.ClientEmail,
		"private_key":  cfg.PrivateKey,
		"token_uri":    "https://oauth2.googleapis.com/token",
	}
	b, err := json.Marshal(sa)
	if err != nil {
		return nil, fmt.Errorf("encode service account: %w", err)
	}
	return b, nil
}
