package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"hummane-api/internal/domain/company"
	"hummane-api/internal/infra"
	"hummane-api/internal/infra/docstore"
	"hummane-api/internal/pkg/clock"
)

const companiesCollection = "companies"

type CompanyStore struct {
	store docstore.Store
	clock clock.Clock
}

func NewCompanyStore(store docstore.Store, clk clock.Clock) *CompanyStore {
	return &CompanyStore{store: store, clock: clk}
}

func (r *CompanyStore) collection() docstore.Collection {
	return r.store.Collection(companiesCollection)
}

func (r *CompanyStore) FindByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	raw, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		return nil, err
	}
	return decodeCompany(raw)
}

// FindByOwner returns the company whose ownerId references the given user.
// A miss is KindNotFound; transport failures keep their own kind so the
// tenant resolver never mistakes an outage for "no company to link".
func (r *CompanyStore) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*company.Company, error) {
	docs, err := r.collection().Where(ctx, "ownerId", ownerID.String())
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, infra.WrapRepoErr("company not found by owner", nil, infra.KindNotFound)
	}
	return decodeCompany(docs[0])
}

func (r *CompanyStore) Create(ctx context.Context, c *company.Company) error {
	return r.collection().Doc(c.ID.String()).Create(ctx, c)
}

func (r *CompanyStore) List(ctx context.Context) ([]*company.Company, error) {
	docs, err := r.collection().All(ctx)
	if err != nil {
		return nil, err
	}

	companies := make([]*company.Company, 0, len(docs))
	for _, raw := range docs {
		c, err := decodeCompany(raw)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, nil
}

func (r *CompanyStore) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*company.Company, error) {
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
	return decodeCompany(raw)
}

func (r *CompanyStore) Delete(ctx context.Context, id uuid.UUID) error {
	return r.collection().Doc(id.String()).Delete(ctx)
}

func decodeCompany(raw json.RawMessage) (*company.Company, error) {
	var c company.Company
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, infra.WrapRepoErr("failed to decode company document", err)
	}
	return &c, nil
}
