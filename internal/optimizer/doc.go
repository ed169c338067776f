// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package optimizer searches a week's menu for meal combinations that reach a
// protein goal within a calorie limit, and ranks individual items by protein
// efficiency.
package optimizer
