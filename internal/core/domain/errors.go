package domain

import "errors"

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateLogin = errors.New("login already registered")
)
