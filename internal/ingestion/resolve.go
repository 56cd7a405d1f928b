package ingestion

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/applytrack/internal/db"
	"github.com/jonathan/applytrack/internal/types"
)

// Store is what the pipeline needs from the persistence layer. Each
// InsertApplication call is its own independent write; the pipeline never
// wraps a batch in a transaction.
type Store interface {
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	ListUsers(ctx context.Context) ([]db.User, error)
	InsertApplication(ctx context.Context, a *db.Application) (uuid.UUID, error)
}

// ResolutionError is a row-scoped failure to resolve a candidate's owner.
type ResolutionError struct {
	UserRef string
	Reason  string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve user %q: %s", e.UserRef, e.Reason)
}

// resolveOwners maps a candidate's user reference to the set of owning user
// IDs. The "all" sentinel fans out to every known user. Resolution never
// creates users.
func resolveOwners(ctx context.Context, store Store, userRef string) ([]uuid.UUID, error) {
	if userRef == types.AllUsersSentinel {
		users, err := store.ListUsers(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}
		if len(users) == 0 {
			return nil, &ResolutionError{UserRef: userRef, Reason: "no users exist"}
		}
		ids := make([]uuid.UUID, len(users))
		for i, u := range users {
			ids[i] = u.ID
		}
		return ids, nil
	}

	id, err := uuid.Parse(userRef)
	if err != nil {
		return nil, &ResolutionError{UserRef: userRef, Reason: "not a valid user ID"}
	}

	user, err := store.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, &ResolutionError{UserRef: userRef, Reason: "user not found"}
	}

	return []uuid.UUID{user.ID}, nil
}
