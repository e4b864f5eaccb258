package validator

import (
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/saludplus/backend/pkg/phone"
)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation("vephone", phoneNumberValidator); err != nil {
			log.Fatal("register vephone validator failed")
		}
		if err := v.RegisterValidation("medicaldocument", medicalDocumentValidator); err != nil {
			log.Fatal("register medicaldocument validator failed")
		}
	}
}

var phoneNumberValidator validator.Func = func(fl validator.FieldLevel) bool {
	return phone.IsValid(fl.Field().String())
}

// DocumentPattern matches a cédula with the V (national) or E (foreign)
// prefix and 6 to 9 digits, dash optional.
var DocumentPattern = regexp.MustCompile(`^[VE]-?\d{6,9}$`)

var medicalDocumentValidator validator.Func = func(fl validator.FieldLevel) bool {
	return DocumentPattern.MatchString(strings.ToUpper(strings.TrimSpace(fl.Field().String())))
}
