package usecase

import (
	"context"
	"testing"

	domainErrors "github.com/nebulaeats/nebula/internal/domain/errors"
	"github.com/nebulaeats/nebula/internal/domain/model"
	testhelpers "github.com/nebulaeats/nebula/internal/test"
)

func TestCartLineSnapshotsMenuItem(t *testing.T) {
	menu := &testhelpers.MenuRepositoryStub{Items: []model.MenuItem{
		{ID: "m-1", RestaurantID: "r-1", Name: "Ramen", Price: 120, ImageURL: "http://img/ramen"},
	}}
	uc := NewCatalogUseCase(menu)

	line, err := uc.CartLine(context.Background(), "m-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.ItemID != "m-1" || line.Name != "Ramen" || line.UnitPrice != 120 || line.RestaurantID != "r-1" {
		t.Fatalf("unexpected snapshot %+v", line)
	}
	if line.Quantity != 0 {
		t.Fatalf("snapshot must carry no quantity, got %d", line.Quantity)
	}

	if _, err := uc.CartLine(context.Background(), "ghost"); err != domainErrors.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMenuFiltersByRestaurant(t *testing.T) {
	menu := &testhelpers.MenuRepositoryStub{Items: []model.MenuItem{
		{ID: "m-1", RestaurantID: "r-1", Name: "Ramen"},
		{ID: "m-2", RestaurantID: "r-2", Name: "Pizza"},
	}}
	uc := NewCatalogUseCase(menu)

	items, err := uc.Menu(context.Background(), "r-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "m-1" {
		t.Fatalf("unexpected menu %+v", items)
	}
}

func TestLoyaltyHistory(t *testing.T) {
	rewards := &testhelpers.RewardRepositoryStub{Items: []model.RewardTransaction{
		{OrderID: "o-1", PointsEarned: 10},
		{OrderID: "o-2", PointsEarned: 10},
	}}
	uc := NewLoyaltyUseCase(rewards)

	history, err := uc.History(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 ledger entries, got %d", len(history))
	}
}
