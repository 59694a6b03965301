package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mugstore/backoffice/internal/api/metrics"
	"github.com/mugstore/backoffice/internal/core/domain"
	"github.com/mugstore/backoffice/internal/core/ports"
)

// UserHandler handles HTTP requests for account management and the audit
// trail.
type UserHandler struct {
	users ports.UserService
	audit ports.AuditService
}

func NewUserHandler(users ports.UserService, audit ports.AuditService) *UserHandler {
	return &UserHandler{users: users, audit: audit}
}

// List handles GET /accounts/users.
//
// @Summary      List accounts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        search  query     string  false  "Substring match on username, name or email"
// @Success      200     {object}  userListResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /accounts/users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))

	result, err := h.users.List(c.Request().Context(), ports.ListUsersFilter{
		Search: c.QueryParam("search"),
		Page:   page,
	})
	if err != nil {
		return err
	}

	items := make([]userResponse, 0, len(result.Items))
	for _, u := range result.Items {
		items = append(items, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, userListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get handles GET /accounts/users/:id.
//
// @Summary      Get an account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Router       /accounts/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Create handles POST /accounts/users.
//
// @Summary      Create an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /accounts/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Create(c.Request().Context(), actor, ports.CreateUserInput{
		Username:      req.Username,
		Email:         req.Email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Password:      req.Password,
		Role:          domain.Role(req.Role),
		Phone:         req.Phone,
		IsActiveAdmin: req.IsActiveAdmin,
	})
	if err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("User", "create").Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Update handles PUT /accounts/users/:id. Accepts JSON or multipart form;
// the multipart form may carry an "avatar" file.
//
// @Summary      Update an account
// @Tags         users
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Account details"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /accounts/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	avatar, err := formUpload(c, "avatar")
	if err != nil {
		return err
	}

	user, err := h.users.Update(c.Request().Context(), actor, c.Param("id"), ports.UpdateUserInput{
		Username:      req.Username,
		Email:         req.Email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Role:          domain.Role(req.Role),
		Phone:         req.Phone,
		IsActiveAdmin: req.IsActiveAdmin,
		Avatar:        avatar,
	})
	if err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("User", "update").Inc()
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete handles DELETE /accounts/users/:id.
//
// @Summary      Delete an account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "User id"
// @Success      204  "account deleted"
// @Failure      404  {object}  errorResponse
// @Router       /accounts/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.users.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("User", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Profile handles GET /accounts/profile.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /accounts/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	user, err := h.users.Profile(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateProfile handles PUT /accounts/profile. The role is not editable
// here regardless of payload.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Router       /accounts/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	avatar, err := formUpload(c, "avatar")
	if err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), actor, ports.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Avatar:    avatar,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Logs handles GET /accounts/logs.
//
// @Summary      List audit log entries
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number (1-based)"
// @Success      200   {object}  auditListResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /accounts/logs [get]
func (h *UserHandler) Logs(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))

	result, err := h.audit.List(c.Request().Context(), ports.ListAuditFilter{Page: page})
	if err != nil {
		return err
	}

	items := make([]auditEntryResponse, 0, len(result.Items))
	for _, e := range result.Items {
		items = append(items, toAuditEntryResponse(e))
	}
	return c.JSON(http.StatusOK, auditListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}
