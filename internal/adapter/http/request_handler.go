package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lab-inventory/internal/domain/request"
	ucrequest "lab-inventory/internal/usecase/request"
)

type RequestHandler struct{ uc *ucrequest.Usecase }

func NewRequestHandler(uc *ucrequest.Usecase) *RequestHandler { return &RequestHandler{uc: uc} }

type submitReq struct {
	ItemID       string `json:"itemId" validate:"required,max=64"`
	RequestedQty int    `json:"requestedQty" validate:"gt=0"`
	Priority     string `json:"priority" validate:"required,priority"`
	ReviewNote   string `json:"reviewNote" validate:"max=500"`
}

// reviewReq keeps the decision under "status", as clients already send it.
type reviewReq struct {
	Status      string `json:"status" validate:"required,decision"`
	ApprovedQty *int   `json:"approvedQty" validate:"omitempty,gte=0"`
	ReviewNote  string `json:"reviewNote" validate:"max=500"`
}

func (h *RequestHandler) Submit(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	var req submitReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	created, err := h.uc.Submit(c.Request().Context(), actor, ucrequest.SubmitInput{
		ItemID:       req.ItemID,
		RequestedQty: req.RequestedQty,
		Priority:     request.Priority(req.Priority),
		Note:         req.ReviewNote,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"ok": true, "request": created})
}

func (h *RequestHandler) Review(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if id == "" {
		return request.ErrInvalidPayload
	}
	var req reviewReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	reviewed, err := h.uc.Review(c.Request().Context(), actor, ucrequest.ReviewInput{
		RequestID:   id,
		Decision:    request.Decision(req.Status),
		ApprovedQty: req.ApprovedQty,
		Note:        req.ReviewNote,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "request": reviewed})
}
