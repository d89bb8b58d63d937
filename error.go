package jrepl

import "github.com/gopatchy/jrepl/pkg/errors"

var (
	// Base error; every error in jrepl inherits from this
	Err = errors.Err

	// Input errors
	ErrInvalidArguments         = errors.ErrInvalidArguments
	ErrMalformedReplacementSpec = errors.ErrMalformedReplacementSpec
	ErrUnknownFormat            = errors.ErrUnknownFormat

	// File system errors
	ErrInvalidDirectory = errors.ErrInvalidDirectory
	ErrNoMatchingFiles  = errors.ErrNoMatchingFiles
	ErrOutputWrite      = errors.ErrOutputWrite

	// Document errors
	ErrJSONParse = errors.ErrJSONParse
	ErrEncode    = errors.ErrEncode
	ErrMaxDepth  = errors.ErrMaxDepth

	ErrBatch = errors.ErrBatch
)
