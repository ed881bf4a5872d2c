package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/hims-api/pkg/recordid"
)

// RegisterValidators installs the custom binding rules on gin's validator:
// recordid=<prefix> checks the shape of a record ID, and field names are
// reported by their json name.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return v.RegisterValidation("recordid", validateRecordID)
}

func validateRecordID(fl validator.FieldLevel) bool {
	return recordid.Valid(recordid.Prefix(fl.Param()), strings.TrimSpace(fl.Field().String()))
}
