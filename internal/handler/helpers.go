package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Xdennizhu20X/back-abg/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "JSON inválido: " + err.Error(),
		})
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Error de validación",
			"error":   fields,
		})
		return false
	}
	return true
}

// respondError translates service errors into the response envelope. Unknown
// errors are delegated to the ErrorHandler middleware, which logs and answers
// with a generic 500.
func respondError(c *gin.Context, err error) {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{
			"success": false,
			"message": apiErr.Message,
			"error":   apiErr.Code,
		})
		return
	}
	var fieldErrs *apierror.FieldErrors
	if errors.As(err, &fieldErrs) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": fieldErrs.Message,
			"error":   fieldErrs.Fields,
		})
		return
	}
	_ = c.Error(err)
}

// paramID parses a numeric path parameter, answering 400 on garbage.
func paramID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Identificador inválido",
		})
		return 0, false
	}
	return uint(id), true
}
