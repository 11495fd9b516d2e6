// Package mocks provides testify/mock implementations of the store and
// notifier interfaces for service and handler tests.
package mocks
