package handlers

import (
	"time"

	"github.com/threadline/storefront/internal/domain/entity"
)

// userView is the fixed result contract for user-returning operations.
// Credential material (hash, reset token) never crosses this boundary.
type userView struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
}

func toUserView(u *entity.User) userView {
	return userView{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Permissions: u.Permissions.Strings(),
		CreatedAt:   u.CreatedAt,
	}
}

func toUserViews(us []*entity.User) []userView {
	out := make([]userView, 0, len(us))
	for _, u := range us {
		out = append(out, toUserView(u))
	}
	return out
}

type itemView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Image       string    `json:"image,omitempty"`
	LargeImage  string    `json:"large_image,omitempty"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func toItemView(it *entity.Item) itemView {
	return itemView{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		Price:       it.Price,
		Image:       it.Image,
		LargeImage:  it.LargeImage,
		UserID:      it.UserID,
		CreatedAt:   it.CreatedAt,
	}
}

func toItemViews(its []*entity.Item) []itemView {
	out := make([]itemView, 0, len(its))
	for _, it := range its {
		out = append(out, toItemView(it))
	}
	return out
}

type cartItemView struct {
	ID       string    `json:"id"`
	ItemID   string    `json:"item_id"`
	Quantity int       `json:"quantity"`
	Item     *itemView `json:"item,omitempty"`
}

func toCartItemView(ci *entity.CartItem) cartItemView {
	v := cartItemView{ID: ci.ID, ItemID: ci.ItemID, Quantity: ci.Quantity}
	if ci.Item != nil {
		iv := toItemView(ci.Item)
		v.Item = &iv
	}
	return v
}

func toCartItemViews(cis []*entity.CartItem) []cartItemView {
	out := make([]cartItemView, 0, len(cis))
	for _, ci := range cis {
		out = append(out, toCartItemView(ci))
	}
	return out
}

type orderItemView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Image       string `json:"image,omitempty"`
	Quantity    int    `json:"quantity"`
}

type orderView struct {
	ID        string          `json:"id"`
	Total     int64           `json:"total"`
	ChargeID  string          `json:"charge_id"`
	Items     []orderItemView `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
}

func toOrderView(o *entity.Order) orderView {
	items := make([]orderItemView, 0, len(o.Items))
	for _, oi := range o.Items {
		items = append(items, orderItemView{
			ID:          oi.ID,
			Title:       oi.Title,
			Description: oi.Description,
			Price:       oi.Price,
			Image:       oi.Image,
			Quantity:    oi.Quantity,
		})
	}
	return orderView{ID: o.ID, Total: o.Total, ChargeID: o.ChargeID, Items: items, CreatedAt: o.CreatedAt}
}

func toOrderViews(os []*entity.Order) []orderView {
	out := make([]orderView, 0, len(os))
	for _, o := range os {
		out = append(out, toOrderView(o))
	}
	return out
}
