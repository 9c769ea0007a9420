package domain

import "errors"

// ErrInvalidShippingMethod 配送方式不是 standard / express
var ErrInvalidShippingMethod = errors.New("invalid shipping method")
