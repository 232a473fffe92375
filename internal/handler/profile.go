package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/repository"
	"github.com/iliyamo/restaurant-reservation/internal/utils"
)

type updateProfileReq struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

type changePasswordReq struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// GetProfile handles GET /api/users/profile/:userId. A caller may only
// read their own profile: any other target id is rejected before the
// store is touched.
func (h *AuthHandler) GetProfile(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	targetID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil || targetID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if callerID != targetID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByID(ctx, callerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		c.Logger().Errorf("profile: query user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"username": u.Name,
		"email":    u.Email,
		"id":       u.ID,
	})
}

// UpdateProfile handles PUT /api/users/profile. The caller identity
// comes from the token; the body carries only the new name and email.
// An email belonging to a different user is rejected.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	taken, err := h.Users.EmailTakenByOther(ctx, req.Email, callerID)
	if err != nil {
		c.Logger().Errorf("profile update: email check: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error while updating profile."})
	}
	if taken {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "This email is already in use by another user."})
	}

	if err := h.Users.UpdateProfile(ctx, callerID, req.Username, req.Email); err != nil {
		if err == repository.ErrEmailExists {
			// lost the race to another signup between check and write
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "This email is already in use by another user."})
		}
		c.Logger().Errorf("profile update: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error while updating profile."})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Profile updated successfully!"})
}

// ChangePassword handles PUT /api/users/change-password. The current
// password must verify against the stored hash before the new one
// replaces it; only hashes are ever compared or written.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByID(ctx, callerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found."})
		}
		c.Logger().Errorf("change password: query user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error while changing password."})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.CurrentPassword) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid current password."})
	}

	if err := h.Users.UpdatePassword(ctx, callerID, req.NewPassword, h.Cfg.BcryptCost); err != nil {
		c.Logger().Errorf("change password: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error while changing password."})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Password changed successfully!"})
}
