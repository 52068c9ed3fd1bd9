package billing

import "errors"

// ErrInvalidArgument reports an amount that cannot be represented in words.
var ErrInvalidArgument = errors.New("billing: invalid argument")
