// Package driver models delivery drivers and their Idle/Assigned availability.
package driver
