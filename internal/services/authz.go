package services

import "github.com/devlink-app/devlink-backend/internal/models"

// requireOwner allows a mutation only when the verified caller is the
// resource owner. The forbidden kind is distinct from not_found so a denied
// caller learns nothing about whether the resource exists.
func requireOwner(callerID, ownerID string) error {
	if callerID != ownerID {
		return models.NewForbiddenError("user not authorized")
	}
	return nil
}
