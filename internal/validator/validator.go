// Package validator provides custom validation functions for Gin's binding
// engine and turns validation failures into client-facing messages.
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Deletion scopes accepted by the scoped deleter.
const (
	ScopeThisOnly      = "apenas_esta"
	ScopeThisAndFuture = "esta_e_futuras"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("delete_scope", validateDeleteScope)
		_ = v.RegisterValidation("date_ymd", validateDate)
	}
}

// fieldName reports fields by their wire name so messages match the payload.
func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "despesa", "receita":
		return true
	}
	return false
}

func validateDeleteScope(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case ScopeThisOnly, ScopeThisAndFuture:
		return true
	}
	return false
}

func validateDate(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns the calendar date at
// UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.DateOnly, time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("data inválida %q, use AAAA-MM-DD", s)
}

// Describe converts a binding error into a message naming the offending field.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describeField(fe))
		}
		return strings.Join(msgs, "; ")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("campo %s com tipo inválido", typeErr.Field)
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return "JSON inválido"
	}

	if errors.Is(err, io.EOF) {
		return "corpo da requisição vazio"
	}

	return err.Error()
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("campo obrigatório ausente: %s", fe.Field())
	case "transaction_type":
		return fmt.Sprintf("%s deve ser despesa ou receita", fe.Field())
	case "delete_scope":
		return fmt.Sprintf("%s deve ser %s ou %s", fe.Field(), ScopeThisOnly, ScopeThisAndFuture)
	case "date_ymd":
		return fmt.Sprintf("%s deve ser uma data AAAA-MM-DD", fe.Field())
	case "hex_color":
		return fmt.Sprintf("%s deve ser uma cor hexadecimal", fe.Field())
	case "max":
		return fmt.Sprintf("%s excede o tamanho máximo (%s)", fe.Field(), fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s abaixo do mínimo (%s)", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("campo inválido: %s", fe.Field())
	}
}
