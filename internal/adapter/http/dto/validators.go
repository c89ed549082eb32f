package dto

import (
	"html"
	"reflect"
	"regexp"
	"strings"

	"peer-wallet/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var safeStringRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterValidations(v)
	}
}

// RegisterValidations adds the custom tags used by the request DTOs.
func RegisterValidations(v *validator.Validate) {
	_ = v.RegisterValidation("safe_id", validateSafeID)
	_ = v.RegisterValidation("currency", validateCurrency)
	_ = v.RegisterValidation("product_type", validateProductType)
	_ = v.RegisterValidation("money", validateMoney)
}

// validateSafeID allows alphanumeric, underscore, dash, and dot.
func validateSafeID(fl validator.FieldLevel) bool {
	return safeStringRe.MatchString(fl.Field().String())
}

func validateCurrency(fl validator.FieldLevel) bool {
	return domain.Currency(fl.Field().String()).IsSupported()
}

func validateProductType(fl validator.FieldLevel) bool {
	_, err := domain.ParseProductType(fl.Field().String())
	return err == nil
}

// validateMoney accepts a decimal string with at most two decimals.
// The sign is left to the domain.
func validateMoney(fl validator.FieldLevel) bool {
	d, err := domain.ParseAmount(fl.Field().String())
	if err != nil {
		return false
	}
	return domain.HasMoneyScale(d)
}

// SanitizeStruct trims whitespace and HTML-escapes every exported string
// field (including *string) of a struct pointer. Slices of structs are
// walked. Fields tagged `sanitize:"-"` are left untouched.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	rt := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() || rt.Field(i).Tag.Get("sanitize") == "-" {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				elem.SetString(sanitize(elem.String()))
			}
		case reflect.Slice:
			for j := 0; j < f.Len(); j++ {
				item := f.Index(j)
				switch item.Kind() {
				case reflect.String:
					item.SetString(sanitize(item.String()))
				case reflect.Struct:
					sanitizeFields(item)
				}
			}
		}
	}
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
