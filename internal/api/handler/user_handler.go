package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studentdiscount/marketplace-api/internal/core/domain"
	"github.com/studentdiscount/marketplace-api/internal/core/ports"
)

type updateUserRequest struct {
	Name           *string                `json:"name"`
	Email          *string                `json:"email"  validate:"omitempty,email"`
	Mobile         *string                `json:"mobile" validate:"omitempty,mobile"`
	Role           *string                `json:"role"   validate:"omitempty,oneof=STUDENT FACULTY ADMIN VENDOR"`
	Verified       *bool                  `json:"verified"`
	Institute      *string                `json:"institute"`
	RollNo         *string                `json:"roll_no"`
	EmployeeID     *string                `json:"employee_id"`
	BusinessName   *string                `json:"business_name"`
	StudentDetails *domain.StudentDetails `json:"student_details"`
	VendorDetails  *domain.VendorDetails  `json:"vendor_details"`
}

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Get handles GET /api/users/:id. The returned record never carries a
// password field.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	user, err := h.userService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /api/users/:id. Owners may edit their own record;
// admins may edit anyone and are the only role allowed to change role or
// verified.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	actorID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	patch := ports.UserUpdate{
		Name:           req.Name,
		Email:          req.Email,
		Mobile:         req.Mobile,
		Verified:       req.Verified,
		Institute:      req.Institute,
		RollNo:         req.RollNo,
		EmployeeID:     req.EmployeeID,
		BusinessName:   req.BusinessName,
		StudentDetails: req.StudentDetails,
		VendorDetails:  req.VendorDetails,
	}
	if req.Role != nil {
		r := domain.Role(*req.Role)
		patch.Role = &r
	}

	user, err := h.userService.Update(c.Request().Context(), actorID, role, c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
