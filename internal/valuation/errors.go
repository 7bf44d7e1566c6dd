package valuation

import "errors"

// ErrUnknownLossType marks an invariant violation: a loss type that passed
// validation but is not handled by the engine. The validator's and engine's
// accepted-value sets must be kept in lockstep, so this is a programming
// fault, never a recoverable input condition.
var ErrUnknownLossType = errors.New("unknown loss type")
