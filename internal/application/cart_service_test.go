package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/threadline/storefront/internal/domain/entity"
)

func newCartFixture() (*CartService, *stubCartRepo, *stubItemRepo) {
	items := newStubItemRepo()
	carts := newStubCartRepo(items)
	return NewCartService(carts, items, testLogger()), carts, items
}

func seedItem(t *testing.T, items *stubItemRepo, title string, price int64) *entity.Item {
	t.Helper()
	it := &entity.Item{Title: title, Price: price, UserID: "seller-1"}
	if err := items.Create(context.Background(), it); err != nil {
		t.Fatalf("seeding item failed: %v", err)
	}
	return it
}

func TestCartService_AddToCart_NewLine(t *testing.T) {
	svc, _, items := newCartFixture()
	it := seedItem(t, items, "Mug", 1800)

	line, err := svc.AddToCart(context.Background(), "user-1", it.ID)
	if err != nil {
		t.Fatalf("AddToCart returned error: %v", err)
	}
	if line.Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", line.Quantity)
	}
}

func TestCartService_AddToCart_IncrementsExistingLine(t *testing.T) {
	svc, _, items := newCartFixture()
	it := seedItem(t, items, "Mug", 1800)

	first, err := svc.AddToCart(context.Background(), "user-1", it.ID)
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	second, err := svc.AddToCart(context.Background(), "user-1", it.ID)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the same line, got %q and %q", first.ID, second.ID)
	}
	if second.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", second.Quantity)
	}

	lines, err := svc.ListCart(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListCart failed: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected a single consolidated line, got %d", len(lines))
	}
}

func TestCartService_AddToCart_ConcurrentAddsCollapse(t *testing.T) {
	svc, _, items := newCartFixture()
	it := seedItem(t, items, "Mug", 1800)

	const n = 16
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if _, err := svc.AddToCart(context.Background(), "user-1", it.ID); err != nil {
				t.Errorf("concurrent add failed: %v", err)
			}
		}()
	}
	wg.Wait()

	lines, err := svc.ListCart(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListCart failed: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected one line after %d concurrent adds, got %d", n, len(lines))
	}
	if lines[0].Quantity != n {
		t.Fatalf("expected quantity %d, got %d", n, lines[0].Quantity)
	}
}

func TestCartService_AddToCart_UnknownItem(t *testing.T) {
	svc, _, _ := newCartFixture()

	if _, err := svc.AddToCart(context.Background(), "user-1", "item-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCartService_AddToCart_Unauthenticated(t *testing.T) {
	svc, _, items := newCartFixture()
	it := seedItem(t, items, "Mug", 1800)

	if _, err := svc.AddToCart(context.Background(), "", it.ID); !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
}

func TestCartService_RemoveFromCart(t *testing.T) {
	svc, _, items := newCartFixture()
	it := seedItem(t, items, "Mug", 1800)

	line, err := svc.AddToCart(context.Background(), "user-1", it.ID)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := svc.RemoveFromCart(context.Background(), line.ID, "user-1"); err != nil {
		t.Fatalf("RemoveFromCart returned error: %v", err)
	}
	lines, _ := svc.ListCart(context.Background(), "user-1")
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(lines))
	}
}

func TestCartService_RemoveFromCart_NotOwner(t *testing.T) {
	svc, carts, items := newCartFixture()
	it := seedItem(t, items, "Mug", 1800)

	line, err := svc.AddToCart(context.Background(), "user-1", it.ID)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := svc.RemoveFromCart(context.Background(), line.ID, "user-2"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	// The line must survive the rejected removal.
	if _, err := carts.GetByID(context.Background(), line.ID); err != nil {
		t.Fatalf("line should still exist: %v", err)
	}
}

func TestCartService_RemoveFromCart_UnknownLine(t *testing.T) {
	svc, _, _ := newCartFixture()

	if err := svc.RemoveFromCart(context.Background(), "cart-missing", "user-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
