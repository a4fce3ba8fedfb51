package kpi

import "errors"

// ErrInvalidPeriodConfig is wrapped by every configuration validation failure.
var ErrInvalidPeriodConfig = errors.New("invalid period config")
