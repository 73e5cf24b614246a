package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/studentdiscount/marketplace-api/internal/core/domain"
	"github.com/studentdiscount/marketplace-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub catalog repository
// ---------------------------------------------------------------------------

type stubProductRepo struct {
	byID      map[string]*domain.Product
	createErr error
	nextID    int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) FindAll(_ context.Context, filter ports.ProductFilter) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.byID {
		if filter.VendorID != "" && p.VendorID != filter.VendorID {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProductRepo) Search(_ context.Context, _ ports.SearchParams) ([]*domain.Product, error) {
	return r.FindAll(context.Background(), ports.ProductFilter{})
}

func (r *stubProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *product
	clone.ID = fmt.Sprintf("prod_%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, patch ports.ProductUpdate) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestProductService_Create_DefaultStatus(t *testing.T) {
	repo := newStubProductRepo()
	audit := &stubEmitter{}
	svc := NewProductService(repo, audit, zerolog.Nop())

	created, err := svc.Create(context.Background(), "usr_3", ports.CreateProductInput{
		Name:     "USB-C Hub",
		Price:    34.99,
		Category: "Electronics",
		VendorID: "usr_3",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Status != domain.StatusPending {
		t.Errorf("expected pending status by default, got %s", created.Status)
	}
	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditProductCreated {
		t.Errorf("expected one create audit event, got %+v", audit.events)
	}
	if audit.events[0].Actor != "usr_3" {
		t.Errorf("audit event must carry the actor, got %q", audit.events[0].Actor)
	}
}

func TestProductService_Create_ExplicitStatus(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), "usr_1", ports.CreateProductInput{
		Name:   "Desk Lamp",
		Status: domain.StatusActive,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Status != domain.StatusActive {
		t.Errorf("explicit status must survive, got %s", created.Status)
	}
}

func TestProductService_Create_RepoError(t *testing.T) {
	repo := newStubProductRepo()
	repo.createErr = errors.New("write failed")
	audit := &stubEmitter{}
	svc := NewProductService(repo, audit, zerolog.Nop())

	if _, err := svc.Create(context.Background(), "usr_3", ports.CreateProductInput{Name: "x"}); err == nil {
		t.Fatalf("expected error")
	}
	if len(audit.events) != 0 {
		t.Errorf("failed create must not emit an audit event")
	}
}

func TestProductService_Update(t *testing.T) {
	repo := newStubProductRepo()
	repo.byID["prod_1"] = &domain.Product{ID: "prod_1", Name: "Headphones", Price: 129.99}
	audit := &stubEmitter{}
	svc := NewProductService(repo, audit, zerolog.Nop())

	price := 99.99
	updated, err := svc.Update(context.Background(), "usr_3", "prod_1", ports.ProductUpdate{Price: &price})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Price != 99.99 {
		t.Errorf("price not patched: %v", updated.Price)
	}
	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditProductUpdated {
		t.Errorf("expected one update audit event, got %+v", audit.events)
	}

	if _, err := svc.Update(context.Background(), "usr_3", "prod_404", ports.ProductUpdate{Price: &price}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_Delete(t *testing.T) {
	repo := newStubProductRepo()
	repo.byID["prod_1"] = &domain.Product{ID: "prod_1"}
	audit := &stubEmitter{}
	svc := NewProductService(repo, audit, zerolog.Nop())

	deleted, err := svc.Delete(context.Background(), "usr_1", "prod_1")
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !deleted {
		t.Fatalf("expected deletion")
	}
	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditProductDeleted {
		t.Errorf("expected one delete audit event, got %+v", audit.events)
	}

	deleted, err = svc.Delete(context.Background(), "usr_1", "prod_1")
	if err != nil {
		t.Fatalf("second Delete returned error: %v", err)
	}
	if deleted {
		t.Errorf("deleting an unknown id must report false")
	}
	if len(audit.events) != 1 {
		t.Errorf("a no-op delete must not emit an audit event")
	}
}
