package postgres

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already exists")
	ErrProductNotFound   = errors.New("product not found")
	ErrShiftNotFound     = errors.New("shift not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)
