package scene

import (
	"errors"

	"wordsphere/internal/words"
)

var (
	// ErrInvalidArgument is returned for item lists or viewports that cannot be shown.
	ErrInvalidArgument = words.ErrInvalidArgument
	// ErrResourceUnavailable is returned when a surface or font cannot be created.
	ErrResourceUnavailable = errors.New("resource unavailable")
	// ErrDisposed is returned by Mount once the renderer has been disposed.
	ErrDisposed = errors.New("renderer disposed")
)
