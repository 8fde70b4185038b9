// Package preference records each member's last-viewed default. The write
// is a full overwrite: whatever was stored before is replaced wholesale.
package preference

import (
	"context"

	"github.com/google/uuid"
)

type Preference struct {
	UserID          uuid.UUID
	TenantID        uuid.UUID
	DefaultViewType string
	DefaultViewID   string
}

type Repository interface {
	GetForUser(ctx context.Context, userID uuid.UUID) (*Preference, error)
	Write(ctx context.Context, data *Preference) error
}
