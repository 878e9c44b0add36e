package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/threadline/storefront/internal/domain/entity"
	"github.com/threadline/storefront/internal/domain/permission"
	"github.com/threadline/storefront/internal/domain/repository"
	"github.com/threadline/storefront/pkg/helpers"
)

// ItemService manages catalog items, their images and the search index.
type ItemService struct {
	Items        repository.ItemRepository
	Users        repository.UserRepository
	GCS          *storage.Client
	GCSBucket    string
	ES           *elasticsearch.Client
	ESItemsIndex string
	Logger       *logrus.Logger
}

func NewItemService(items repository.ItemRepository, users repository.UserRepository, gcs *storage.Client, gcsBucket string,
	es *elasticsearch.Client, esItemsIndex string, logger *logrus.Logger) *ItemService {
	return &ItemService{Items: items, Users: users, GCS: gcs, GCSBucket: gcsBucket, ES: es, ESItemsIndex: esItemsIndex, Logger: logger}
}

type ItemInput struct {
	Title       string
	Description string
	Price       int64
	Image       string
	LargeImage  string
}

func (s *ItemService) CreateItem(ctx context.Context, userID string, in ItemInput) (*entity.Item, error) {
	if err := RequireAuthenticated(userID); err != nil {
		return nil, err
	}
	if in.Title == "" || in.Price <= 0 {
		return nil, ErrValidation
	}
	it := &entity.Item{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		LargeImage:  in.LargeImage,
		UserID:      userID,
	}
	if err := s.Items.Create(ctx, it); err != nil {
		return nil, err
	}
	_ = s.indexItem(ctx, it)
	return it, nil
}

// UpdateItem mutates display fields. Only the owner or an ADMIN may update.
func (s *ItemService) UpdateItem(ctx context.Context, userID, itemID string, in ItemInput) (*entity.Item, error) {
	u, it, err := s.load(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := RequireOwnerOr(u, it.UserID, permission.NewSet(permission.Admin)); err != nil {
		return nil, err
	}

	if in.Title != "" {
		it.Title = in.Title
	}
	if in.Description != "" {
		it.Description = in.Description
	}
	if in.Price > 0 {
		it.Price = in.Price
	}
	if err := s.Items.Update(ctx, it); err != nil {
		return nil, err
	}
	_ = s.indexItem(ctx, it)
	return it, nil
}

// DeleteItem requires ownership or one of {ADMIN, ITEMDELETE}.
func (s *ItemService) DeleteItem(ctx context.Context, userID, itemID string) error {
	u, it, err := s.load(ctx, userID, itemID)
	if err != nil {
		return err
	}
	if err := RequireOwnerOr(u, it.UserID, permission.NewSet(permission.Admin, permission.ItemDelete)); err != nil {
		return err
	}
	if err := s.Items.Delete(ctx, itemID); err != nil {
		return err
	}
	s.deindexItem(ctx, itemID)
	return nil
}

func (s *ItemService) GetItem(ctx context.Context, itemID string) (*entity.Item, error) {
	it, err := s.Items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return it, nil
}

func (s *ItemService) ListItems(ctx context.Context, limit, offset int) ([]*entity.Item, error) {
	return s.Items.List(ctx, limit, offset)
}

// UploadImage stores an item image in GCS and persists its public URL.
func (s *ItemService) UploadImage(ctx context.Context, userID, itemID string, r io.Reader, filename, contentType string) (*entity.Item, error) {
	u, it, err := s.load(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := RequireOwnerOr(u, it.UserID, permission.NewSet(permission.Admin)); err != nil {
		return nil, err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("object storage not configured")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("items", itemID, uuid.NewString()+ext))
	url, err := helpers.UploadImageToGCS(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}
	it.Image = url
	it.LargeImage = url
	if err := s.Items.Update(ctx, it); err != nil {
		return nil, err
	}
	_ = s.indexItem(ctx, it)
	return it, nil
}

// SearchItems runs a multi_match over title and description.
func (s *ItemService) SearchItems(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESItemsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESItemsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *ItemService) load(ctx context.Context, userID, itemID string) (*entity.User, *entity.Item, error) {
	if err := RequireAuthenticated(userID); err != nil {
		return nil, nil, err
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrAuthRequired
		}
		return nil, nil, err
	}
	it, err := s.Items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return u, it, nil
}

func (s *ItemService) indexItem(ctx context.Context, it *entity.Item) error {
	if s.ES == nil || s.ESItemsIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":          it.ID,
		"title":       it.Title,
		"description": it.Description,
		"price":       it.Price,
		"image":       it.Image,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESItemsIndex, DocumentID: it.ID, Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("item_id", it.ID).Warn("item index failed")
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("item_id", it.ID).Warn("item index response error")
	}
	return nil
}

func (s *ItemService) deindexItem(ctx context.Context, itemID string) {
	if s.ES == nil || s.ESItemsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESItemsIndex, DocumentID: itemID}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("item_id", itemID).Warn("item deindex failed")
		return
	}
	_ = res.Body.Close()
}
