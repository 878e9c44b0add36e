package application

import (
	"context"
	"errors"
	"testing"

	"github.com/threadline/storefront/internal/domain/entity"
	"github.com/threadline/storefront/internal/domain/permission"
)

type itemFixture struct {
	svc   *ItemService
	users *stubUserRepo
	items *stubItemRepo
}

func newItemFixture(t *testing.T) *itemFixture {
	t.Helper()
	users := newStubUserRepo()
	items := newStubItemRepo()
	svc := NewItemService(items, users, nil, "", nil, "", testLogger())
	return &itemFixture{svc: svc, users: users, items: items}
}

func (f *itemFixture) addUser(t *testing.T, email string, perms permission.Set) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Password: "x", Name: email, Permissions: perms}
	if err := f.users.Create(context.Background(), u); err != nil {
		t.Fatalf("seeding user failed: %v", err)
	}
	return u
}

func TestItemService_CreateItem(t *testing.T) {
	f := newItemFixture(t)
	owner := f.addUser(t, "seller@example.com", permission.NewSet(permission.User, permission.ItemCreate))

	it, err := f.svc.CreateItem(context.Background(), owner.ID, ItemInput{Title: "Beanie", Description: "wool", Price: 2900})
	if err != nil {
		t.Fatalf("CreateItem returned error: %v", err)
	}
	if it.ID == "" || it.UserID != owner.ID {
		t.Fatalf("unexpected item: %+v", it)
	}
}

func TestItemService_CreateItem_Validation(t *testing.T) {
	f := newItemFixture(t)
	owner := f.addUser(t, "seller@example.com", permission.NewSet(permission.User))

	if _, err := f.svc.CreateItem(context.Background(), owner.ID, ItemInput{Title: "", Price: 100}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty title, got %v", err)
	}
	if _, err := f.svc.CreateItem(context.Background(), owner.ID, ItemInput{Title: "Free", Price: 0}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for non-positive price, got %v", err)
	}
	if _, err := f.svc.CreateItem(context.Background(), "", ItemInput{Title: "Beanie", Price: 2900}); !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired without a session, got %v", err)
	}
}

func TestItemService_UpdateItem_OwnerOrAdmin(t *testing.T) {
	f := newItemFixture(t)
	owner := f.addUser(t, "seller@example.com", permission.NewSet(permission.User))
	stranger := f.addUser(t, "other@example.com", permission.NewSet(permission.User))
	admin := f.addUser(t, "root@example.com", permission.NewSet(permission.Admin))

	it, err := f.svc.CreateItem(context.Background(), owner.ID, ItemInput{Title: "Beanie", Price: 2900})
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	if _, err := f.svc.UpdateItem(context.Background(), stranger.ID, it.ID, ItemInput{Price: 100}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}
	updated, err := f.svc.UpdateItem(context.Background(), owner.ID, it.ID, ItemInput{Price: 3100})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Price != 3100 {
		t.Fatalf("price not updated: %d", updated.Price)
	}
	if _, err := f.svc.UpdateItem(context.Background(), admin.ID, it.ID, ItemInput{Title: "Renamed"}); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
}

func TestItemService_DeleteItem_Guards(t *testing.T) {
	f := newItemFixture(t)
	owner := f.addUser(t, "seller@example.com", permission.NewSet(permission.User))
	stranger := f.addUser(t, "other@example.com", permission.NewSet(permission.User))
	moderator := f.addUser(t, "mod@example.com", permission.NewSet(permission.User, permission.ItemDelete))
	admin := f.addUser(t, "root@example.com", permission.NewSet(permission.Admin))

	cases := []struct {
		name    string
		userID  string
		wantErr error
	}{
		{"stranger forbidden", stranger.ID, ErrForbidden},
		{"owner allowed", owner.ID, nil},
		{"item-delete grant allowed", moderator.ID, nil},
		{"admin allowed", admin.ID, nil},
	}
	for _, tc := range cases {
		it, err := f.svc.CreateItem(context.Background(), owner.ID, ItemInput{Title: "Beanie", Price: 2900})
		if err != nil {
			t.Fatalf("%s: CreateItem failed: %v", tc.name, err)
		}
		err = f.svc.DeleteItem(context.Background(), tc.userID, it.ID)
		if tc.wantErr == nil && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestItemService_GetItem_Unknown(t *testing.T) {
	f := newItemFixture(t)

	if _, err := f.svc.GetItem(context.Background(), "item-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestItemService_SearchItems_NoBackendConfigured(t *testing.T) {
	f := newItemFixture(t)

	res, err := f.svc.SearchItems(context.Background(), "mug", 10)
	if err != nil {
		t.Fatalf("SearchItems returned error: %v", err)
	}
	if len(res) != 0 {
		t.Fatalf("expected empty result without a search backend, got %d", len(res))
	}
}
