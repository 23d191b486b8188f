package domain

import "errors"

var (
	ErrSlotEmpty      = errors.New("autosave slot is empty")
	ErrStepBlocked    = errors.New("fix errors before continuing")
	ErrFinalStep      = errors.New("already on the last step")
	ErrUnknownStep    = errors.New("unknown wizard step")
	ErrWizardNotFound = errors.New("wizard not found")
	ErrWizardClosed   = errors.New("wizard is closed")
	ErrInvalidPatch   = errors.New("invalid draft patch")
	ErrInternal       = errors.New("internal server error")
)
