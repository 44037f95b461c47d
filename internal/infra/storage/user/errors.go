package user

import "errors"

var (
	ErrBuildQuery = errors.New("user.repository: failed to build SQL query")
	ErrExecQuery  = errors.New("user.repository: failed to execute SQL query")
	ErrScanRow    = errors.New("user.repository: failed to scan row")
)
