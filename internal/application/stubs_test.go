package application

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/threadline/storefront/internal/domain/entity"
	"github.com/threadline/storefront/internal/domain/permission"
	"github.com/threadline/storefront/internal/domain/repository"
	"github.com/threadline/storefront/internal/infrastructure/payment"
	"github.com/threadline/storefront/pkg/helpers"
	"github.com/threadline/storefront/pkg/mailer"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testJWT() *helpers.JWTManager {
	return helpers.NewJWTManager("test-secret", time.Hour)
}

// stubUserRepo is an in-memory UserRepository.
type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*entity.User)}
}

func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	if u.ResetToken != nil {
		t := *u.ResetToken
		c.ResetToken = &t
	}
	if u.ResetTokenExpiry != nil {
		e := *u.ResetTokenExpiry
		c.ResetTokenExpiry = &e
	}
	return &c
}

func (r *stubUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) SetResetToken(_ context.Context, id, token string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	return nil
}

func (r *stubUserRepo) GetByResetToken(_ context.Context, token string, now time.Time) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token &&
			u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(now) {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) ResetPassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = passwordHash
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	return nil
}

func (r *stubUserRepo) UpdatePermissions(_ context.Context, id string, perms permission.Set) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Permissions = perms
	return cloneUser(u), nil
}

// stubItemRepo is an in-memory ItemRepository.
type stubItemRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Item
	seq   int
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[string]*entity.Item)}
}

func cloneItem(it *entity.Item) *entity.Item {
	if it == nil {
		return nil
	}
	c := *it
	return &c
}

func (r *stubItemRepo) Create(_ context.Context, it *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	it.ID = fmt.Sprintf("item-%d", r.seq)
	r.items[it.ID] = cloneItem(it)
	return nil
}

func (r *stubItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneItem(it), nil
}

func (r *stubItemRepo) List(_ context.Context, limit, offset int) ([]*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, cloneItem(it))
	}
	return out, nil
}

func (r *stubItemRepo) Update(_ context.Context, it *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[it.ID]; !ok {
		return repository.ErrNotFound
	}
	r.items[it.ID] = cloneItem(it)
	return nil
}

func (r *stubItemRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// stubCartRepo is an in-memory CartRepository. AddOne holds the lock for
// the whole increment-or-create step, mirroring the database upsert.
type stubCartRepo struct {
	mu    sync.Mutex
	lines map[string]*entity.CartItem
	seq   int
	items *stubItemRepo
}

func newStubCartRepo(items *stubItemRepo) *stubCartRepo {
	return &stubCartRepo{lines: make(map[string]*entity.CartItem), items: items}
}

func cloneCartItem(ci *entity.CartItem) *entity.CartItem {
	if ci == nil {
		return nil
	}
	c := *ci
	c.Item = cloneItem(ci.Item)
	return &c
}

func (r *stubCartRepo) AddOne(_ context.Context, userID, itemID string) (*entity.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, line := range r.lines {
		if line.UserID == userID && line.ItemID == itemID {
			line.Quantity++
			return cloneCartItem(line), nil
		}
	}
	r.seq++
	line := &entity.CartItem{
		ID:       fmt.Sprintf("cart-%d", r.seq),
		UserID:   userID,
		ItemID:   itemID,
		Quantity: 1,
	}
	r.lines[line.ID] = line
	return cloneCartItem(line), nil
}

func (r *stubCartRepo) GetByID(_ context.Context, id string) (*entity.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	line, ok := r.lines[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneCartItem(line), nil
}

func (r *stubCartRepo) ListByUser(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.CartItem, 0)
	for _, line := range r.lines {
		if line.UserID != userID {
			continue
		}
		c := cloneCartItem(line)
		if r.items != nil {
			if it, err := r.items.GetByID(ctx, line.ItemID); err == nil {
				c.Item = it
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *stubCartRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lines[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.lines, id)
	return nil
}

func (r *stubCartRepo) clearUser(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, line := range r.lines {
		if line.UserID == userID {
			delete(r.lines, id)
		}
	}
}

// stubOrderRepo is an in-memory OrderRepository with the charge-id
// idempotency of the real implementation.
type stubOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*entity.Order
	seq    int
	carts  *stubCartRepo
}

func newStubOrderRepo(carts *stubCartRepo) *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*entity.Order), carts: carts}
}

func cloneOrder(o *entity.Order) *entity.Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Items = append([]entity.OrderItem(nil), o.Items...)
	return &c
}

func (r *stubOrderRepo) CreateWithCartClear(_ context.Context, o *entity.Order) (*entity.Order, error) {
	r.mu.Lock()
	for _, existing := range r.orders {
		if existing.ChargeID == o.ChargeID {
			r.mu.Unlock()
			if r.carts != nil {
				r.carts.clearUser(o.UserID)
			}
			return cloneOrder(existing), nil
		}
	}
	r.seq++
	stored := cloneOrder(o)
	stored.ID = fmt.Sprintf("order-%d", r.seq)
	stored.CreatedAt = time.Now()
	r.orders[stored.ID] = stored
	r.mu.Unlock()
	if r.carts != nil {
		r.carts.clearUser(o.UserID)
	}
	return cloneOrder(stored), nil
}

func (r *stubOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) ListByUser(_ context.Context, userID string) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Order, 0)
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

// stubGateway is a payment.Gateway returning a canned charge or error.
type stubGateway struct {
	mu      sync.Mutex
	err     error
	seq     int
	charges []int64
	// fixedID forces every charge to return the same id.
	fixedID string
}

func (g *stubGateway) Charge(_ context.Context, amount int64, currency, sourceToken string) (*payment.Charge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	g.charges = append(g.charges, amount)
	id := g.fixedID
	if id == "" {
		g.seq++
		id = fmt.Sprintf("ch_%d", g.seq)
	}
	return &payment.Charge{ID: id, Amount: amount, Status: "succeeded"}, nil
}

// stubMailQueue records published email jobs.
type stubMailQueue struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
	err  error
}

func (q *stubMailQueue) PublishJSON(_ context.Context, body any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	if job, ok := body.(mailer.EmailJob); ok {
		q.jobs = append(q.jobs, job)
	}
	return nil
}
