// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
)

var (
	// ErrServeApi is returned when the server stops serving unexpectedly
	ErrServeApi = errors.New("failed to serve api")
	// ErrInvalidAddress is returned for a listening address that is not host:port
	ErrInvalidAddress = errors.New("invalid api listening address")
)

// ErrInvalidMethod is returned when a route uses a method the api does not serve
type ErrInvalidMethod struct {
	Method string
	Path   string
}

func (e ErrInvalidMethod) Error() string {
	return fmt.Sprintf("unsupported method %q for route %s", e.Method, e.Path)
}

type ErrCreateOpenapiSchema struct {
	name string
	err  error
}

// NewErrCreateOpenapiSchema wraps err for the schema of name
func NewErrCreateOpenapiSchema(name string, err error) ErrCreateOpenapiSchema {
	return ErrCreateOpenapiSchema{name: name, err: err}
}

func (e ErrCreateOpenapiSchema) Error() string {
	return fmt.Sprintf("failed to get schema for %s: %v", e.name, e.err)
}

func (e ErrCreateOpenapiSchema) Unwrap() error {
	return e.err
}
