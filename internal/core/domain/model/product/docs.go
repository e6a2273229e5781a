// Package product holds the catalogue entry and its stock rules.
//
// Stock decrements in storage are conditional updates; Decrease mirrors the
// same rule in memory so both paths report ErrInsufficientStock identically.
package product
