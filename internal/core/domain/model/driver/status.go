package driver

import (
	"fmt"
	"strings"

	"warehouse/internal/pkg/errs"
)

// Status is the availability of a driver.
//
//	Idle ──Assign──> Assigned ──Release──> Idle
type Status int

const (
	Unknown Status = iota
	Idle
	Assigned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		Idle:     "Idle",
		Assigned: "Assigned",
	}
}

func ParseStatus(s string) (Status, error) {
	for status, label := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(label, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("driver status", fmt.Errorf("%q is not a valid driver status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func (s Status) Validate() error {
	if s != Idle && s != Assigned {
		return errs.NewValueIsInvalidErrorWithCause("driver status", fmt.Errorf("%d is not a valid driver status", s))
	}
	return nil
}
