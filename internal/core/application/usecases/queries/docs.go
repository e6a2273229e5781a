// Package queries contains the read side: list and lookup operations that
// bypass the aggregates and read PostgreSQL directly through GORM raw SQL.
// Every query is a constructor-validated value handled by its own handler.
package queries
