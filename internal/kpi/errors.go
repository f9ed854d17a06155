package kpi

import "errors"

var ErrUnknownTable = errors.New("unknown kpi table")
