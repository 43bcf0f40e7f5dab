// Package store implements the record store used for all persistence: one
// JSON file per record, listed/fetched/upserted/deleted by id. Two backends
// (Google Drive folder, local directory) honor the same contract so the
// domain layer stays storage-agnostic. Last write wins; there is no locking.
package store

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/api/googleapi"
)

// Entity is anything the store can persist: identifiable and self-validating.
// Every Put re-validates the full record before it is written.
type Entity interface {
	GetID() string
	Validate() error
}

// Store is the list/get/put/delete contract over a single collection.
type Store[T Entity] interface {
	// List returns every well-formed record; malformed files are skipped.
	List(ctx context.Context) ([]T, error)
	// Get returns the record and whether it exists.
	Get(ctx context.Context, id string) (T, bool, error)
	// Put upserts item under item.GetID() after re-validating it.
	Put(ctx context.Context, item T) (T, error)
	// Delete removes the record; deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}

const noQuotaMarker = "Service Accounts do not have storage quota"

// IsNoQuotaError reports whether err is the Drive "service account has no
// storage quota" write failure, the one operational pitfall worth a
// dedicated, actionable message (store the folder on a Shared Drive).
func IsNoQuotaError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return strings.Contains(apiErr.Message, noQuotaMarker) ||
			strings.Contains(apiErr.Error(), noQuotaMarker)
	}
	return strings.Contains(err.Error(), noQuotaMarker)
}
