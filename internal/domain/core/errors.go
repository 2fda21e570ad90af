package core

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrCompanyNotFound  = errors.New("company not found")
	ErrUserNotFound     = errors.New("user not found")
)
