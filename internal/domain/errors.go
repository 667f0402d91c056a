// SPDX-License-Identifier: Apache-2.0

package domain

import "errors"

var ErrMissingCustomerID = errors.New("customer id is required")
var ErrInvalidLimit = errors.New("limit must be a positive integer")
var ErrInvalidOffset = errors.New("offset must not be negative")
var ErrCallbackNotFound = errors.New("callback not found")
