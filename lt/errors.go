package lt

import "github.com/pkg/errors"

// ErrInvalidArgument is the sentinel wrapped by all validation failures:
// empty source sets, unequal block lengths, k == 0, block_size == 0 at
// construction time, and payload length mismatches in
// Decoder.AddEncodedBlock.
var ErrInvalidArgument = errors.New("lt: invalid argument")

// ErrSeedMismatch and ErrCorruptResidual are not returned as errors from
// Decoder.AddEncodedBlock — per spec.md §7 they are non-fatal, never
// propagated as Go errors, so that a streaming caller never has to
// special-case them. A seed mismatch is reported through
// AddResult.SeedMismatch; a corrupt residual is only logged and is not
// reported in the call's return values. Neither sentinel is returned or
// wrapped anywhere in this package; they are kept as documentation anchors.
var (
	ErrSeedMismatch    = errors.New("lt: degree does not match seed")
	ErrCorruptResidual = errors.New("lt: residual payload non-zero after full cancellation")
)

func errInvalidArgumentf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}
