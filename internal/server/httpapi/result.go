package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fortress-vault/fortress/internal/common"
)

// Store operations answer with a discriminated result so the UI can render a
// message without exception handling: {"success":true,"data":...} or
// {"success":false,"error":"..."}.

func ok(c *gin.Context, data any) {
	body := gin.H{"success": true}
	if data != nil {
		body["data"] = data
	}
	c.JSON(http.StatusOK, body)
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"success": false, "error": displayMessage(err)})
}

// failValidation reports a caller-side input problem with a field-specific
// message.
func failValidation(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorDuplicateEmail),
		errors.Is(err, common.ErrorDuplicateName),
		errors.Is(err, common.ErrorReferentialIntegrity):
		return http.StatusConflict
	case errors.Is(err, common.ErrorAdvisoryUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, common.ErrorStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// displayMessage maps taxonomy errors to the text shown in the UI. Internal
// details never pass through here; services have already reduced unexpected
// faults to the generic sentinels.
func displayMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return "Invalid or missing field values"
	case errors.Is(err, common.ErrorNotFound):
		return "Record not found"
	case errors.Is(err, common.ErrorDuplicateEmail):
		return "A user with this email already exists"
	case errors.Is(err, common.ErrorDuplicateName):
		return "A department with this name already exists"
	case errors.Is(err, common.ErrorReferentialIntegrity):
		return "Cannot delete department with assigned users"
	case errors.Is(err, common.ErrorAdvisoryUnavailable):
		return "Failed to get suggestion. Please try again."
	default:
		return "Service temporarily unavailable. Please try again."
	}
}
