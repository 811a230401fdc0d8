package grnutils

import "fmt"

/*FormatError malformed row in a tab-separated input file */
type FormatError struct {
	File string
	Line int
	Msg  string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s:%d: %s: %v", e.File, e.Line, e.Msg, e.Err)
	}

	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
