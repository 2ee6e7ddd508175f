package service

import "errors"

// ErrInvalidPolicy indicates a policy name could not be parsed.
var ErrInvalidPolicy = errors.New("invalid policy")
