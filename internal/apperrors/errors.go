package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrNotLinked indicates that the LINE user has no linked freee account.
// Kept distinct from ErrNotFound so callers can answer with a link prompt
// instead of a generic miss.
var ErrNotLinked = errors.New("account not linked")

// ErrPeriodNotFound indicates that the accounting API has no books for the
// requested fiscal year. The report assembler retries these against the
// previous fiscal year; everything else propagates unchanged.
var ErrPeriodNotFound = errors.New("accounting period not found")
