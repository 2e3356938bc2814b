package service

import (
	"github.com/meeplemeet/meeplemeet-api/internal/models"
	appErrors "github.com/meeplemeet/meeplemeet-api/pkg/errors"
)

// requireActor rejects anonymous calls to operations that need an identity.
func requireActor(actor *models.JWTClaims) error {
	if actor == nil || actor.AccountID == "" {
		return appErrors.Clone(appErrors.ErrUnauthorized, "authentication required")
	}
	return nil
}

// ownerOrAdmin allows the resource owner and administrators.
func ownerOrAdmin(actor *models.JWTClaims, ownerID string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if actor.Role == models.RoleAdmin || actor.AccountID == ownerID {
		return nil
	}
	return appErrors.Clone(appErrors.ErrForbidden, "only the owner can modify this resource")
}
