package wire

import "fmt"

// frameLengthMismatch reports a decoded record whose consumed bit length
// does not match the outer frame's declared length — a protocol violation
// per §4.3 ("after the whole record, if length_required(), bits_consumed
// MUST equal outer_length; any shortfall or overrun is a decode error").
func frameLengthMismatch(consumed, want int) error {
	return fmt.Errorf("%w: consumed %d bits, frame declared %d", ErrProtocolViolation, consumed, want)
}
