// Package errs holds the error taxonomy shared by the dispatch engine.
//
// Every typed error unwraps to a sentinel, which lets the HTTP layer map
// failures to status codes with errors.Is:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: bad input
//   - ObjectNotFoundError: unknown id
//   - StateIsInvalidError: lifecycle transition not allowed
//   - ObjectIsUnavailableError: courier exists but cannot take the order
package errs
