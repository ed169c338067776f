// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Store when an entry does not exist.
var ErrNotFound = errors.New("cache entry not found")

// Store persists raw entry documents by name.
type Store interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	// List returns the names of all entries.
	List(ctx context.Context) ([]string, error)
	Remove(ctx context.Context, name string) error
	String() string
}
