package models

import "errors"

// ErrThumbnailNotFound is returned when no record matches the id (and owner).
var ErrThumbnailNotFound = errors.New("thumbnail not found")
