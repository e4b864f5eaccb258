package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func errorResponse(c *gin.Context, code ErrorCode) {
	c.AbortWithStatusJSON(http.StatusBadRequest, getErrorStruct(code))
}

func conflictResponse(c *gin.Context, code ErrorCode) {
	c.AbortWithStatusJSON(http.StatusConflict, getErrorStruct(code))
}

func validationErrorResponse(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		out := make([]ValidationError, len(verr))
		for i, ferr := range verr {
			out[i] = ValidationError{ferr.Field(), msgForTag(ferr.Tag(), ferr.Param())}
		}
		response := ValidationErrorStruct{
			ErrorCode:    6000,
			ErrorMessage: "Validation error",
		}
		response.Errors = out
		c.JSON(http.StatusBadRequest, response)
		return
	}

	c.JSON(http.StatusBadRequest, ValidationErrorStruct{
		ErrorCode:    6000,
		ErrorMessage: "Validation error",
	})
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "Este campo es obligatorio"
	case "email":
		return "Formato de correo inválido"
	case "number":
		return "El campo debe ser numérico"
	case "min":
		return fmt.Sprintf("El campo debe tener al menos %v caracteres", value)
	case "max":
		return fmt.Sprintf("El campo no puede exceder %v caracteres", value)
	case "vephone":
		return "Número de teléfono venezolano inválido"
	case "medicaldocument":
		return "Documento inválido, use el formato V-12345678"
	}
	return tag
}
