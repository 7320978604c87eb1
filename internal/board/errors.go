package board

import "errors"

// ErrFormat marks malformed FEN, square or move text. These failures are
// recoverable: reject the input and re-prompt, or fail the batch record.
var ErrFormat = errors.New("invalid format")

// ErrIllegalState marks an invariant violation such as a board with no king.
// It is a programming error, not something user input can trigger.
var ErrIllegalState = errors.New("illegal state")
