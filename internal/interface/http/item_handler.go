package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/threadline/storefront/internal/application"
	"github.com/threadline/storefront/internal/interface/middleware"
	"github.com/threadline/storefront/pkg/response"
	"github.com/threadline/storefront/pkg/validation"
)

// maxImageBytes caps item image uploads.
const maxImageBytes = 10 << 20

// ItemHandler exposes catalog item mutations, reads and search.
type ItemHandler struct {
	Items  *application.ItemService
	Logger *logrus.Logger
}

func NewItemHandler(items *application.ItemService, logger *logrus.Logger) *ItemHandler {
	return &ItemHandler{Items: items, Logger: logger}
}

type itemRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,gt=0"`
	Image       string `json:"image"`
	LargeImage  string `json:"large_image"`
}

type updateItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"omitempty,gt=0"`
}

// Create POST /api/items
func (h *ItemHandler) Create(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	it, err := h.Items.CreateItem(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.ItemInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		LargeImage:  req.LargeImage,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toItemView(it), "item created")
}

// Update PUT /api/items/:id
func (h *ItemHandler) Update(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	it, err := h.Items.UpdateItem(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id"), application.ItemInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toItemView(it), "item updated")
}

// Delete DELETE /api/items/:id
func (h *ItemHandler) Delete(c *gin.Context) {
	if err := h.Items.DeleteItem(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "item deleted")
}

// Get GET /api/items/:id
func (h *ItemHandler) Get(c *gin.Context) {
	it, err := h.Items.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toItemView(it), "item")
}

// List GET /api/items
func (h *ItemHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	its, err := h.Items.ListItems(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toItemViews(its), "items")
}

// Search GET /api/items/search?q=
func (h *ItemHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Items.SearchItems(c.Request.Context(), q, size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results")
}

// UploadImage POST /api/items/:id/image (multipart field "image")
func (h *ItemHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "missing image file", nil)
		return
	}
	if fh.Size > maxImageBytes {
		response.Fail(c, http.StatusBadRequest, "image too large", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer func() { _ = f.Close() }()

	it, err := h.Items.UploadImage(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id"),
		f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toItemView(it), "image uploaded")
}
