package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	domain "lab-inventory/internal/domain/permission"
	ucpermission "lab-inventory/internal/usecase/permission"
)

type DepartmentHandler struct{ uc *ucpermission.Usecase }

func NewDepartmentHandler(uc *ucpermission.Usecase) *DepartmentHandler {
	return &DepartmentHandler{uc: uc}
}

type createDepartmentReq struct {
	Name string `json:"name" validate:"required,department"`
}

func (h *DepartmentHandler) Create(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	var req createDepartmentReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.uc.CreateDepartment(c.Request().Context(), actor, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"ok": true, "permission": p})
}

func (h *DepartmentHandler) List(c echo.Context) error {
	list, err := h.uc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"permissions": list})
}

func (h *DepartmentHandler) UpdatePermissions(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	var patch domain.Patch
	if err := c.Bind(&patch); err != nil {
		return ErrMalformedJSON.WithCause(err)
	}
	p, err := h.uc.SetDepartmentPermission(c.Request().Context(), actor, c.Param("department"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "permission": p})
}
