package domain

import "errors"

var (
	// ErrNotStakeholder is returned when a progress update is submitted by
	// someone who holds no stakeholder role on the use case.
	ErrNotStakeholder = errors.New("editor is not a stakeholder for this use case")

	// ErrUnknownRole is returned for a role id that is missing from the
	// role mapping or no longer active.
	ErrUnknownRole = errors.New("unknown or inactive role")

	// ErrPhaseUnresolved is returned when a use case has no current phase or
	// status to snapshot onto a progress update.
	ErrPhaseUnresolved = errors.New("unable to resolve current phase or status")
)
