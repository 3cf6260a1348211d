package repositories

import (
	stderrors "errors"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrNotFound = stderrors.New("record not found")

func translateNotFound(err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return errors.WithStack(err)
}
