package config

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rileyhilliard/sysdash/internal/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func configValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.Split(f.Tag.Get("yaml"), ",")[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks the config for errors and returns a structured error naming
// the first offending key.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but sysdash only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest sysdash release")
	}

	err := configValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.WrapWithCode(err, errors.ErrConfig, "Config couldn't be validated", "")
	}

	fe := fieldErrs[0]
	key := configKey(fe)
	return errors.WrapWithCode(err, errors.ErrConfig,
		fmt.Sprintf("Bad value for %s: %s", key, describe(fe)),
		fmt.Sprintf("Fix '%s' in your config file or set %s", key, EnvVar(key)))
}

// EnvVar returns the environment variable that overrides a dotted config key.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// configKey turns "Config.poll.interval" into "poll.interval".
func configKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.IndexByte(ns, '.'); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "it's required"
	case "url":
		return fmt.Sprintf("%q isn't a URL", fe.Value())
	case "oneof":
		return fmt.Sprintf("%v must be one of: %s", fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("%v is below the minimum of %s", fe.Value(), fe.Param())
	case "excluded_with":
		return "set either auth.token or auth.jwt_secret, not both"
	}
	return fmt.Sprintf("failed the %q check", fe.Tag())
}
