package settings

import (
	"fmt"

	"maskframe/internal/core"
)

func errMissingEnv(name string) error {
	return fmt.Errorf("settings: %w: %s", core.ErrMissingEnv, name)
}
