package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"noteshare/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errCreateItem = "failed to create item"
	errListItems  = "failed to list items"
	errItemLookup = "item not found"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Request DTO for creating an item.
type createItemRequest struct {
	Title          string     `json:"title" binding:"required"`
	Content        string     `json:"content" binding:"required"`
	ExpirationDate *time.Time `json:"expiration_date"` // RFC3339; omit for no expiry
}

// CreateItemRequest is an exported model for Swagger docs of the create payload.
type CreateItemRequest struct {
	Title string `json:"title" example:"groceries"`
	// Note body
	Content string `json:"content" example:"milk, eggs"`
	// Optional RFC3339 timestamp after which the item disappears from listings
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

// @Summary      Create an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body   CreateItemRequest  true  "Item payload"
// @Success      200   {object}  models.Item
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /items/ [post]
// @Security     BearerAuth
func (h *Handler) createItem(c *gin.Context) {
	var req createItemRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	owner, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	item, err := h.services.Items.Create(c.Request.Context(), owner, service.ItemInput{
		Title:          req.Title,
		Content:        req.Content,
		ExpirationDate: req.ExpirationDate,
	})
	if err != nil {
		h.logAndJSONError(c, errorStatus(err), errCreateItem, "item_create_failed", err, "owner", owner.Username)
		return
	}

	c.JSON(http.StatusOK, item)
}

// @Summary      List items
// @Description  Public listing; expired items are filtered out.
// @Tags         items
// @Produce      json
// @Param        skip   query  int  false  "Offset"  default(0)
// @Param        limit  query  int  false  "Max rows" default(10)
// @Success      200  {array}   models.Item
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /items/ [get]
func (h *Handler) listItems(c *gin.Context) {
	skip, err := intQuery(c, "skip", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'skip' parameter"})
		return
	}
	limit, err := intQuery(c, "limit", service.DefaultListLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'limit' parameter"})
		return
	}

	items, err := h.services.Items.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListItems, "item_list_failed", err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// @Summary      Get an item by id
// @Description  Returns the item even when expired; only the listing filters expiration.
// @Tags         items
// @Produce      json
// @Param        id  path  int  true  "Item id"
// @Success      200  {object}  models.Item
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /items/{id} [get]
// @Security     BearerAuth
func (h *Handler) getItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	item, err := h.services.Items.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errItemLookup})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errItemLookup, "item_get_failed", err, "id", id)
		return
	}

	c.JSON(http.StatusOK, item)
}

// @Summary      Delete an item
// @Description  Owner-scoped; a foreign or missing item both yield 404.
// @Tags         items
// @Produce      json
// @Param        id  path  int  true  "Item id"
// @Success      204  "deleted"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /items/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	owner, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	if err := h.services.Items.Delete(c.Request.Context(), id, owner.ID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errItemLookup})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to delete item", "item_delete_failed", err, "id", id)
		return
	}

	c.Status(http.StatusNoContent)
}

// intQuery parses an optional non-negative integer query parameter.
func intQuery(c *gin.Context, name string, def int) (int, error) {
	qs := c.Query(name)
	if qs == "" {
		return def, nil
	}
	v, err := strconv.Atoi(qs)
	if err != nil || v < 0 {
		return 0, errInvalidQuery
	}
	return v, nil
}

var errInvalidQuery = errors.New("invalid query parameter")
