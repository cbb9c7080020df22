package services

import (
	"context"

	"github.com/looplinehq/loopline/backend/internal/models"
)

// UserDirectory resolves user identities. Backed by the user repository in
// production; the core only needs lookup.
type UserDirectory interface {
	GetUserByID(id string) (*models.User, error)
}

// AssetStore removes uploaded files. Deletion is best-effort: the core
// swallows failures so storage cleanup can never block a message tombstone.
type AssetStore interface {
	DeleteByPath(ctx context.Context, path string) error
}

// PushSender delivers a notification to a device token. Best-effort only.
type PushSender interface {
	Send(ctx context.Context, token, title, body string) error
}
