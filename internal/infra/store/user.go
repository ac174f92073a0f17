package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"hummane-api/internal/domain/user"
	"hummane-api/internal/infra"
	"hummane-api/internal/infra/docstore"
	"hummane-api/internal/pkg/clock"
)

const usersCollection = "users"

type UserStore struct {
	store docstore.Store
	clock clock.Clock
}

func NewUserStore(store docstore.Store, clk clock.Clock) *UserStore {
	return &UserStore{store: store, clock: clk}
}

func (r *UserStore) collection() docstore.Collection {
	return r.store.Collection(usersCollection)
}

func (r *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	raw, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (r *UserStore) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	docs, err := r.collection().Where(ctx, "email", email)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, infra.WrapRepoErr("user not found by email", nil, infra.KindNotFound)
	}
	return decodeUser(docs[0])
}

// Create persists a new user. The store's uniqueness constraint on email
// makes concurrent duplicate logins surface as KindDuplicateKey, which the
// caller resolves by re-reading the winning record.
func (r *UserStore) Create(ctx context.Context, u *user.User) error {
	return r.collection().Doc(u.ID.String()).Create(ctx, u)
}

func (r *UserStore) List(ctx context.Context, companyID *uuid.UUID) ([]*user.User, error) {
	var docs []json.RawMessage
	var err error
	if companyID != nil {
		docs, err = r.collection().Where(ctx, "companyId", companyID.String())
	} else {
		docs, err = r.collection().All(ctx)
	}
	if err != nil {
		return nil, err
	}

	users := make([]*user.User, 0, len(docs))
	for _, raw := range docs {
		u, err := decodeUser(raw)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// SetCompany merges the tenant link onto the user document. The write is a
// plain merge upsert, so redundant repairs from racing logins converge on
// the same terminal state.
func (r *UserStore) SetCompany(ctx context.Context, userID, companyID uuid.UUID) error {
	patch := map[string]any{
		"companyId": companyID.String(),
		"updatedAt": r.clock.Now().UTC().Format(time.RFC3339Nano),
	}
	return r.collection().Doc(userID.String()).Set(ctx, patch, docstore.Merge())
}

func (r *UserStore) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*user.User, error) {
	doc := r.collection().Doc(id.String())
	if _, err := doc.Get(ctx); err != nil {
		return nil, err
	}

	updates["updatedAt"] = r.clock.Now().UTC().Format(time.RFC3339Nano)
	if err := doc.Set(ctx, updates, docstore.Merge()); err != nil {
		return nil, err
	}

	raw, err := doc.Get(ctx)
	if err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (r *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	return r.collection().Doc(id.String()).Delete(ctx)
}

func decodeUser(raw json.RawMessage) (*user.User, error) {
	var u user.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, infra.WrapRepoErr("failed to decode user document", err)
	}
	return &u, nil
}
