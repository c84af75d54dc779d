package catalog

import "errors"

var ErrNotFound = errors.New("experience not found")
