package dto

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"stockroom/pkg/e"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// Decimal fields are validated as numbers so gt/lte tags apply to them.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("notblank", validators.NotBlank)

	return v
}

// ValidationError lists the fields that failed validation, keyed by JSON path.
type ValidationError struct {
	Fields map[string]string
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, v.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v *ValidationError) Unwrap() error {
	return e.ErrInvalidInput
}

// Validate checks a single request struct.
func Validate(s interface{}) error {
	fields := map[string]string{}
	collect(fields, "", validate.Struct(s))
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidateProduct checks a product request, including the two-decimal price rule.
func ValidateProduct(req ProductRequest) error {
	fields := map[string]string{}
	collect(fields, "", validate.Struct(req))
	checkCents(fields, "price", req.Price)
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidateStockImport checks every record of an import before anything is written.
func ValidateStockImport(records []StockImportRecord) error {
	fields := map[string]string{}
	for i, r := range records {
		prefix := fmt.Sprintf("[%d].", i)
		collect(fields, prefix, validate.Struct(r))
		checkCents(fields, prefix+"price", r.Price)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidateBasket checks every basket line.
func ValidateBasket(items []BasketItem) error {
	fields := map[string]string{}
	for i, it := range items {
		collect(fields, fmt.Sprintf("[%d].", i), validate.Struct(it))
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func checkCents(fields map[string]string, key string, d decimal.Decimal) {
	if _, failed := fields[key]; failed {
		return
	}
	if !d.Equal(d.Round(2)) {
		fields[key] = "must have at most 2 decimal places"
	}
}

func collect(fields map[string]string, prefix string, err error) {
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields[prefix+"_"] = err.Error()
		return
	}
	for _, fe := range verrs {
		key := fe.Namespace()
		// Drop the struct name: "StockImportRecord.categories[0]" -> "categories[0]".
		if i := strings.Index(key, "."); i >= 0 {
			key = key[i+1:]
		}
		fields[prefix+key] = describe(fe)
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' tag", fe.Tag())
	}
}
