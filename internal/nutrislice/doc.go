// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package nutrislice fetches weekly menus from the Nutrislice menu API and
// converts them into menu items.
package nutrislice
