// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package pkg contains metadata about lanscan.
package pkg

// Version is the current version of lanscan.
// It is set on startup from the version injected into the main package.
var Version string
