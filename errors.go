package balala

import (
	"errors"
	"fmt"
)

var (
	ErrFromNotSet          = errors.New("from model cannot be nil, please check")
	ErrNoClient            = errors.New("sql client is not set")
	ErrNotStruct           = errors.New("model must be a struct or a pointer to struct")
	ErrDuplicateProjection = errors.New("select columns have already been set")
	ErrInvalidColumn       = errors.New("column must be a string or a field accessor")
	ErrNoUpdateColumns     = errors.New("no columns to update")
	ErrUnconditional       = errors.New("refusing to run an update or delete without where clause")
	ErrEmptyBatch          = errors.New("batch has no models")
	ErrMixedPrimaryKeys    = errors.New("batch mixes models with and without primary key")
	ErrNotSlice            = errors.New("models must be a slice")
	ErrInvalidPage         = errors.New("page size must be greater than zero")
	ErrMustBePointer       = errors.New("must be pointer")
)

// MetadataResolutionError is returned when a model type or one of its fields
// cannot be resolved to table or column metadata.
type MetadataResolutionError struct {
	Type  string
	Field string
	Err   error
}

func (e *MetadataResolutionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("cannot resolve metadata of %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("cannot resolve field %s of %s: %v", e.Field, e.Type, e.Err)
}

func (e *MetadataResolutionError) Unwrap() error {
	return e.Err
}

var errNoSuchField = errors.New("no such field")
