package auth

import (
	"github.com/femcoders/pettrack/internal/domain"
	apperrors "github.com/femcoders/pettrack/pkg/util"
)

// This file is the single authorization decision point. Services call these
// helpers instead of re-implementing role checks per resource.

// RequireVeterinary gates mutating and directory operations. An absent
// caller is reported as unauthenticated, a present caller with the wrong
// role as forbidden.
func RequireVeterinary(caller *domain.User, message string) error {
	if caller == nil {
		return apperrors.NewUnauthenticated("authentication required")
	}
	if caller.Role != domain.RoleVeterinary {
		return apperrors.NewForbidden(message)
	}
	return nil
}

// CanAccessOwner decides single-record reads of owned data: veterinarians
// see everything, other callers only their own records. The message never
// reveals whether the target exists.
func CanAccessOwner(caller *domain.User, ownerID int64, message string) error {
	if caller == nil {
		return apperrors.NewUnauthenticated("authentication required")
	}
	if caller.Role == domain.RoleVeterinary || caller.ID == ownerID {
		return nil
	}
	return apperrors.NewForbidden(message)
}

// FilterOwned scopes a candidate set for listing: veterinarians get the
// full set, other callers only the records they own. An empty result is
// valid, not an error.
func FilterOwned[T any](caller *domain.User, records []T, ownerOf func(T) int64) []T {
	if caller != nil && caller.Role == domain.RoleVeterinary {
		return records
	}
	visible := make([]T, 0, len(records))
	if caller == nil {
		return visible
	}
	for _, record := range records {
		if ownerOf(record) == caller.ID {
			visible = append(visible, record)
		}
	}
	return visible
}
