package service

import "fmt"

type ErrValidation struct {
	error
}

func NewErrValidation(format string, args ...any) *ErrValidation {
	return &ErrValidation{fmt.Errorf(format, args...)}
}

func NewErrMachineRequired() *ErrValidation {
	return NewErrValidation("machine is required")
}

func NewErrCompleteDateRequired() *ErrValidation {
	return NewErrValidation("completeDate is required to archive a job")
}

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrJobNotFound(id string) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "job")
}

type ErrInvalidPriority struct {
	error
}

func NewErrInvalidPriority(value string) *ErrInvalidPriority {
	return &ErrInvalidPriority{fmt.Errorf("invalid priority %q, valid values are low, medium, high, critical", value)}
}

type ErrForbidden struct {
	error
}

func NewErrForbidden(user, capability string) *ErrForbidden {
	return &ErrForbidden{fmt.Errorf("user %q lacks the %s capability", user, capability)}
}
