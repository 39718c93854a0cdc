package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lab-inventory/internal/domain/audit"
	"lab-inventory/internal/domain/inventory"
	"lab-inventory/internal/domain/permission"
	"lab-inventory/internal/domain/request"
	domain "lab-inventory/internal/domain/snapshot"
	"lab-inventory/internal/domain/user"
	ucsnapshot "lab-inventory/internal/usecase/snapshot"
)

type SnapshotHandler struct{ uc *ucsnapshot.Usecase }

func NewSnapshotHandler(uc *ucsnapshot.Usecase) *SnapshotHandler { return &SnapshotHandler{uc: uc} }

// importReq accepts both a bare snapshot and an exported backup; the
// provenance fields are ignored. Every collection must be present.
type importReq struct {
	Users       []user.User                       `json:"users" validate:"required"`
	Inventory   []inventory.Item                  `json:"inventory" validate:"required"`
	Requests    []request.Request                 `json:"requests" validate:"required"`
	AuditLogs   []audit.Entry                     `json:"auditLogs" validate:"required"`
	Permissions []permission.DepartmentPermission `json:"permissions" validate:"required"`
}

func (h *SnapshotHandler) Bootstrap(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	s, err := h.uc.Project(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SnapshotHandler) Export(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	b, err := h.uc.ExportBackup(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

func (h *SnapshotHandler) Import(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	var req importReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.uc.Restore(c.Request().Context(), actor, domain.Snapshot(req)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func (h *SnapshotHandler) Reset(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	if err := h.uc.Reset(c.Request().Context(), actor); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
