// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"
	"time"

	"github.com/AnirudhJM24/TechJacked/internal/config"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	// Now is the clock used to resolve week specs and cache ages.
	Now         func() time.Time
	StartingDir string
}

// Clock returns m.Now, defaulting to time.Now.
func (m Meta) Clock() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}
