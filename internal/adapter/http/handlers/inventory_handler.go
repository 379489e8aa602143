package handlers

import (
	"net/http"
	"strconv"

	"servicedesk/internal/adapter/http/dto/request"
	"servicedesk/internal/adapter/http/dto/response"
	"servicedesk/internal/adapter/http/middleware"
	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase"

	"github.com/gin-gonic/gin"
)

// InventoryHandler exposes the catalog and admin stock movements.
type InventoryHandler struct {
	ledger usecase.IInventoryLedgerUseCase
}

func NewInventoryHandler(ledger usecase.IInventoryLedgerUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

func (h *InventoryHandler) List(c *gin.Context) {
	includeInactive, _ := strconv.ParseBool(c.Query("include_inactive"))
	lowStockOnly, _ := strconv.ParseBool(c.Query("low_stock"))
	filter := entities.InventoryFilter{
		IncludeInactive: includeInactive,
		LowStockOnly:    lowStockOnly,
		Category:        entities.Category(c.Query("category")),
	}

	items, err := h.ledger.ListItems(c.Request.Context(), filter)
	if err != nil {
		fail(c, "inventory", "list", err)
		return
	}
	c.JSON(http.StatusOK, response.FromInventoryItems(items))
}

func (h *InventoryHandler) LowStock(c *gin.Context) {
	items, err := h.ledger.LowStock(c.Request.Context())
	if err != nil {
		fail(c, "inventory", "low-stock", err)
		return
	}
	c.JSON(http.StatusOK, response.FromInventoryItems(items))
}

func (h *InventoryHandler) Get(c *gin.Context) {
	item, err := h.ledger.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "inventory", "get", err)
		return
	}
	c.JSON(http.StatusOK, response.FromInventoryItem(item))
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req request.InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, invalidRequest())
		return
	}

	item, err := h.ledger.CreateItem(c.Request.Context(), middleware.ActorFrom(c), req.ToDetails(), req.InitialStock)
	if err != nil {
		fail(c, "inventory", "create", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromInventoryItem(item))
}

// Update edits catalog fields. initial_stock is ignored.
func (h *InventoryHandler) Update(c *gin.Context) {
	var req request.InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, invalidRequest())
		return
	}

	item, err := h.ledger.UpdateItem(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.ToDetails())
	if err != nil {
		fail(c, "inventory", "update", err)
		return
	}
	c.JSON(http.StatusOK, response.FromInventoryItem(item))
}

func (h *InventoryHandler) Deactivate(c *gin.Context) {
	if err := h.ledger.DeactivateItem(c.Request.Context(), middleware.ActorFrom(c), c.Param("id")); err != nil {
		fail(c, "inventory", "deactivate", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) Restock(c *gin.Context) {
	var req request.StockMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, invalidRequest())
		return
	}

	item, err := h.ledger.Release(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.Quantity)
	if err != nil {
		fail(c, "inventory", "restock", err)
		return
	}
	c.JSON(http.StatusOK, response.FromInventoryItem(item))
}

// Withdraw takes units out of stock outside any quotation.
func (h *InventoryHandler) Withdraw(c *gin.Context) {
	var req request.StockMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, invalidRequest())
		return
	}

	item, err := h.ledger.Reserve(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.Quantity)
	if err != nil {
		fail(c, "inventory", "withdraw", err)
		return
	}
	c.JSON(http.StatusOK, response.FromInventoryItem(item))
}
