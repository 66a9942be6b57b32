package ingestion

import (
	"fmt"
	"slices"
)

// Validate decides structural acceptability of fetched tabular data before
// any row is mapped or persisted. It is a pure decision function: rejection
// carries a reason and has no side effects.
//
// The feed is rejected when:
//   - it has no header row at all
//   - the header row does not exactly match the expected ordered header
//   - the number of data rows is below the configured minimum
func Validate(rows [][]string, expectedHeader []string, minRows int) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: %w: feed is empty", ErrValidationFailed, ErrHeaderMismatch)
	}

	if !slices.Equal(rows[0], expectedHeader) {
		return fmt.Errorf("%w: %w: got %d columns, want %d",
			ErrValidationFailed, ErrHeaderMismatch, len(rows[0]), len(expectedHeader))
	}

	if dataRows := len(rows) - 1; dataRows < minRows {
		return fmt.Errorf("%w: %w: %d rows, want at least %d",
			ErrValidationFailed, ErrTooFewRows, dataRows, minRows)
	}

	return nil
}
