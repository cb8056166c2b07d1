package archive

import "errors"

var (
	// ErrQuery means reading repl_monitor rows for a window failed.
	ErrQuery = errors.New("archive: failed to read repl_monitor rows")
	// ErrUpload means the S3 PutObject call for a window failed.
	ErrUpload = errors.New("archive: failed to upload window to s3")
)
