package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrDataIntegrity indicates that persisted data violates a computation
// invariant (a dangling reference, a non-positive useful life on a live
// asset). Generation runs fail outright on it rather than mask it.
var ErrDataIntegrity = errors.New("data integrity violation")
