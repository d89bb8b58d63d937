package errors

import "fmt"

var (
	// Base error; every error in jrepl inherits from this
	Err = fmt.Errorf("jrepl error")

	// Input errors
	ErrInvalidArguments         = fmt.Errorf("invalid arguments (%w)", Err)
	ErrMalformedReplacementSpec = fmt.Errorf("malformed replacement spec (%w)", Err)
	ErrUnknownFormat            = fmt.Errorf("unknown format (%w)", Err)

	// File system errors
	ErrInvalidDirectory = fmt.Errorf("not a valid directory (%w)", Err)
	ErrNoMatchingFiles  = fmt.Errorf("no JSON files found (%w)", Err)
	ErrOutputWrite      = fmt.Errorf("error writing output file (%w)", Err)

	// Document errors
	ErrJSONParse = fmt.Errorf("invalid JSON (%w)", Err)
	ErrEncode    = fmt.Errorf("encoding error (%w)", Err)
	ErrMaxDepth  = fmt.Errorf("maximum nesting depth exceeded (%w)", Err)

	// One or more files in a batch failed
	ErrBatch = fmt.Errorf("batch had failures (%w)", Err)
)
