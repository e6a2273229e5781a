// Package errs provides the error types shared by the warehouse service.
//
// Every type follows one pattern: a sentinel error variable, a struct carrying
// the details, constructors with and without a cause, and an Unwrap method
// returning the sentinel so errors.Is works through wrapping.
//
// Validation errors:
//   - ValueIsRequiredError
//   - ValueIsInvalidError
//   - ValueIsOutOfRangeError
//   - VersionIsInvalidError
//
// Workflow errors:
//   - ObjectNotFoundError: a referenced order, driver or product is missing
//   - InvalidStateError: the aggregate's status does not allow the action
//   - ConflictError: a concurrent writer won, or the resource is already taken
//   - ForbiddenError: the caller does not own the resource
//
// KindOf maps any of these, wrapped or joined, onto a stable Kind that the
// transport layer turns into a status code.
package errs
