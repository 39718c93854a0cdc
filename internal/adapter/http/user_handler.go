package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lab-inventory/internal/domain/user"
	"lab-inventory/internal/usecase/account"
)

type UserHandler struct{ uc *account.Usecase }

func NewUserHandler(uc *account.Usecase) *UserHandler { return &UserHandler{uc: uc} }

type createUserReq struct {
	Name       string `json:"name" validate:"required,min=2,max=120"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Role       string `json:"role" validate:"required,role"`
	Department string `json:"department" validate:"required,department"`
}

type patchUserReq struct {
	Name       *string `json:"name" validate:"omitempty,min=2,max=120"`
	Department *string `json:"department" validate:"omitempty,department"`
	Role       *string `json:"role" validate:"omitempty,role"`
}

func (h *UserHandler) Create(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	var req createUserReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	u, err := h.uc.CreateUser(c.Request().Context(), actor, account.CreateUserInput{
		Name:       req.Name,
		Email:      req.Email,
		Role:       user.Role(req.Role),
		Department: req.Department,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"ok": true, "user": u})
}

func (h *UserHandler) Update(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	var req patchUserReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in := account.UpdateUserInput{Name: req.Name, Department: req.Department}
	if req.Role != nil {
		r := user.Role(*req.Role)
		in.Role = &r
	}
	u, err := h.uc.UpdateUser(c.Request().Context(), actor, c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "user": u})
}

func (h *UserHandler) ToggleStatus(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	u, err := h.uc.ToggleActive(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "user": u})
}
