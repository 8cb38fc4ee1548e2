package commands

import (
	"errors"

	"orderflow/internal/pkg/errs"
)

const DefaultRetryLimit = 3

// retryOnConflict reruns attempt while it fails with a version conflict, at
// most limit times. Each attempt must open its own transaction and reload
// the aggregates it decides on.
func retryOnConflict(limit int, attempt func() error) error {
	if limit < 1 {
		limit = DefaultRetryLimit
	}

	var err error
	for range limit {
		err = attempt()
		if !errors.Is(err, errs.ErrVersionIsInvalid) {
			return err
		}
	}
	return err
}
