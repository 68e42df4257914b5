package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidID             = errors.New("invalid object id")
	ErrDuplicateID           = errors.New("duplicate object id")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
	ErrInvalidTransform      = errors.New("invalid transform")
	ErrInvalidCollisionShape = errors.New("invalid collision shape")
)
