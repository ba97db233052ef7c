package billing

import "errors"

var (
	ErrClaimNotFound  = errors.New("insurance claim not found")
	ErrReportNotFound = errors.New("government report not found")
)
