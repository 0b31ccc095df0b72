package types

import "errors"

var (
	ErrInvalidFigureSpec = errors.New("invalid figure spec")
	ErrUnknownFigureKind = errors.New("unknown figure kind")
	ErrUnknownFormat     = errors.New("unknown output format: supported formats are png and pdf")
	ErrEmptyResultSet    = errors.New("embedded result set has no methods")
	ErrUnknownMethod     = errors.New("category references a method missing from the results table")
)
