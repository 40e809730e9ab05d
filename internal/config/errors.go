package config

import "errors"

var ErrMissingSession = errors.New("missing session token")
var ErrInvalidInterval = errors.New("invalid throttle interval")
var ErrNoCacheDir = errors.New("could not resolve a cache directory")
