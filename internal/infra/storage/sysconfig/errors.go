package sysconfig

import "errors"

var (
	ErrDocumentNotFound = errors.New("sysconfig.repository: document not found")
	ErrBuildQuery       = errors.New("sysconfig.repository: failed to build query")
	ErrExecQuery        = errors.New("sysconfig.repository: failed to execute query")
	ErrEncodeDocument   = errors.New("sysconfig.repository: failed to encode document")
	ErrDecodeDocument   = errors.New("sysconfig.repository: failed to decode document")
)
