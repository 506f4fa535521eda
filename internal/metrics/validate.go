package metrics

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rileyhilliard/sysdash/internal/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator instance. Field names in errors use the
// json tag so messages match the wire format.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonFieldName)
	})
	return validate
}

// Validate checks that a snapshot carries every required top-level section.
// Values inside the sections are never rejected; display code clamps them instead.
func Validate(s *Snapshot) error {
	if s == nil {
		return errors.Validation("Snapshot is empty", nil)
	}

	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.Validation("Snapshot couldn't be validated", err)
	}

	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		missing = append(missing, fe.Field())
	}
	sort.Strings(missing)

	return errors.Validation(
		fmt.Sprintf("Snapshot is missing required fields: %s", strings.Join(missing, ", ")),
		err)
}

// jsonFieldName resolves a struct field to its json name, like the REST validators do.
func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return strings.ToLower(f.Name)
	}
	return strings.Split(tag, ",")[0]
}
