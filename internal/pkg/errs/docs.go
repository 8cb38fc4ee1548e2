// Package errs provides the error vocabulary shared by the order-lifecycle
// service.
//
// Two families live here. The generic ones (ValueIsRequiredError,
// ValueIsInvalidError, ValueIsOutOfRangeError, ObjectNotFoundError and
// VersionIsInvalidError) describe malformed input, missing records and lost
// optimistic-concurrency races. The domain ones (InvalidTransitionError,
// UnauthorizedError, InvalidPinError and the sentinels next to them) describe
// rejected lifecycle operations.
//
// Every error type unwraps to a sentinel so callers classify with errors.Is
// and the HTTP adapter maps each sentinel to a single status code.
package errs
