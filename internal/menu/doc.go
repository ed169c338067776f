// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package menu holds the dining-hall domain types: menu items, halls, meal
// types, food categories and the week arithmetic used to key weekly menus.
package menu
