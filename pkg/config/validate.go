package config

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate checks the merged configuration against its struct tags
// (required fields, the failover mode's oneof=MANUAL AUTOMATIC) and
// returns ErrBadConfig describing the first violation.
func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		validationErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("%w: %v", ErrBadConfig, err)
		}
		first := validationErrs[0]
		return fmt.Errorf("%w: %s failed %q check", ErrBadConfig, first.Field(), first.Tag())
	}
	return nil
}
