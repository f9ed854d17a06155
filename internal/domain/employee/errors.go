package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeExists   = errors.New("employee with this id already exists")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)
