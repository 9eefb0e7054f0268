package chunk

import (
	"context"
	"encoding/base64"
	"io"
	"os"

	"github.com/ytget/ytdl-desktop/internal/logging"
)

// File permissions for files created by Append
const (
	DefaultFilePermissions = 0644
)

// appendFlags create the file if absent, never truncate, and position every
// write at end-of-file.
const appendFlags = os.O_CREATE | os.O_WRONLY | os.O_APPEND

// encoding is the standard alphabet with required padding. Strict mode also
// rejects non-zero trailing bits so every payload has exactly one encoding.
var encoding = base64.StdEncoding.Strict()

// Appender appends decoded chunks to files. It keeps no state between calls
// and is safe for concurrent use.
type Appender struct{}

// NewAppender creates a new chunk appender
func NewAppender() *Appender {
	return &Appender{}
}

// Append decodes payload and appends the bytes to the file at path,
// returning the number of bytes appended.
//
// A *DecodeError leaves the filesystem untouched. An *IOError from the open
// step creates nothing; one from the write step may leave a prefix of the
// chunk written.
func (a *Appender) Append(ctx context.Context, path, payload string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	data, err := Decode(payload)
	if err != nil {
		return 0, err
	}

	n, err := appendBytes(path, data)
	if err != nil {
		logging.Debug("chunk append failed", logging.Fields{
			logging.FieldPath:  path,
			logging.FieldBytes: n,
			logging.FieldError: err,
		})
		return n, err
	}

	logging.Trace("chunk appended", logging.Fields{
		logging.FieldPath:  path,
		logging.FieldBytes: n,
	})
	return n, nil
}

// Append is the context-free form of (*Appender).Append.
func Append(path, payload string) error {
	_, err := NewAppender().Append(context.Background(), path, payload)
	return err
}

// Decode decodes standard, padded base64 text.
func Decode(payload string) ([]byte, error) {
	data, err := encoding.DecodeString(payload)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return data, nil
}

// appendBytes writes data to path in one write call. The file is closed on
// every return path.
func appendBytes(path string, data []byte) (written int, err error) {
	f, err := os.OpenFile(path, appendFlags, DefaultFilePermissions)
	if err != nil {
		return 0, &IOError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOError{Path: path, Err: cerr}
		}
	}()

	if len(data) == 0 {
		return 0, nil
	}

	n, err := f.Write(data)
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return n, &IOError{Path: path, Err: err}
	}
	return n, nil
}
