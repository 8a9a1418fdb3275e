// Package errorspkg provides errors shared by every layer of the wallet.
package errorspkg

import "errors"

// ErrInternal indicates internal server error.
//
// Driver and infrastructure errors are logged where they happen and replaced by
// ErrInternal before they leave the repository layer.
var ErrInternal = errors.New("internal")
