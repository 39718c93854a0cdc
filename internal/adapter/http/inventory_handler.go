package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lab-inventory/internal/domain/inventory"
	"lab-inventory/internal/usecase/stock"
)

type InventoryHandler struct{ uc *stock.Usecase }

func NewInventoryHandler(uc *stock.Usecase) *InventoryHandler { return &InventoryHandler{uc: uc} }

type createItemReq struct {
	Name         string `json:"name" validate:"required,max=160"`
	Category     string `json:"category" validate:"required,max=120"`
	Department   string `json:"department" validate:"required,department"`
	CurrentStock int    `json:"currentStock" validate:"gte=0"`
	MinStock     int    `json:"minStock" validate:"gte=0"`
	Unit         string `json:"unit" validate:"required,max=32"`
}

type patchItemReq struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=160"`
	Category     *string `json:"category" validate:"omitempty,min=1,max=120"`
	Unit         *string `json:"unit" validate:"omitempty,min=1,max=32"`
	CurrentStock *int    `json:"currentStock" validate:"omitempty,gte=0"`
	MinStock     *int    `json:"minStock" validate:"omitempty,gte=0"`
}

func (h *InventoryHandler) Create(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	var req createItemReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	item, err := h.uc.CreateItem(c.Request().Context(), actor, stock.CreateItemInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"ok": true, "item": item})
}

func (h *InventoryHandler) Update(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	var req patchItemReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	item, err := h.uc.UpdateItem(c.Request().Context(), actor, c.Param("id"), inventory.Patch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "item": item})
}
