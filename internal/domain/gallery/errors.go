package gallery

import "errors"

var (
	ErrItemNotFound     = errors.New("portfolio item not found")
	ErrVideoNotFound    = errors.New("showcase video not found")
	ErrInvalidImageType = errors.New("file is not a supported image type")
	ErrInvalidVideoType = errors.New("file is not a supported video type")
	ErrFileTooLarge     = errors.New("file exceeds maximum size")
	ErrEmptyFile        = errors.New("file is empty")
)
