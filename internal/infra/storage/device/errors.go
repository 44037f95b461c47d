package device

import "errors"

var (
	ErrBuildQuery = errors.New("device.repository: failed to build SQL query")
	ErrExecQuery  = errors.New("device.repository: failed to execute SQL query")
	ErrScanRow    = errors.New("device.repository: failed to scan row")
)
