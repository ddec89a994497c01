package apperrors

import (
	"errors"
)

var (
	ErrOrderAlreadyExists = errors.New("order already exists")

	ErrOrdersRetrieval = errors.New("failed to retrieve orders")
	ErrExportFailed    = errors.New("order export failed")
	ErrRemoteCall      = errors.New("remote call failed")
	ErrStore           = errors.New("store operation failed")
)
