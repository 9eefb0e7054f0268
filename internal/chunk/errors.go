package chunk

import "fmt"

// DecodeError reports a chunk whose base64 text could not be decoded.
// The target file is never touched when this error is returned.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode chunk: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IOError reports a failure to open, write or close the target file.
// A failed write may leave a prefix of the chunk on disk.
type IOError struct {
	Path string
	Err  error
}

// Error returns the OS diagnostic, which already names the operation and path.
func (e *IOError) Error() string {
	return fmt.Sprintf("append chunk: %v", e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
