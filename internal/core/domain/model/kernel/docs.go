// Package kernel holds the domain primitives shared by the order, driver and
// product aggregates: the UUID identifier value object and the money helpers
// built on shopspring/decimal.
package kernel
