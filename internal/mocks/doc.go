// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these
// standardized implementations can be reused across test packages. Each mock
// offers map- or slice-backed default behavior plus per-method function
// fields for overriding individual calls.
package mocks
