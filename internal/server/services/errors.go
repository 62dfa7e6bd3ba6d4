package services

import (
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// kindError tags detail with an error kind from common so both match with
// errors.Is.
func kindError(kind, detail error) error {
	return fmt.Errorf("%w: %w", kind, detail)
}

func storageError(err error) error {
	return kindError(common.ErrorStorage, err)
}
