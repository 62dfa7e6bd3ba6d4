package flagx

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// EnvString overwrites *dst with the value of the environment variable name
// when it is set (even to an empty string).
func EnvString(name string, dst *string) {
	if v, ok := os.LookupEnv(name); ok {
		*dst = v
	}
}

// EnvDuration parses the variable as a Go duration ("30m") when set.
func EnvDuration(name string, dst *time.Duration) error {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = d
	return nil
}

// EnvInt parses the variable as a base-10 integer when set.
func EnvInt(name string, dst *int) error {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = n
	return nil
}

// EnvBool parses the variable with strconv.ParseBool when set.
func EnvBool(name string, dst *bool) error {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = b
	return nil
}
