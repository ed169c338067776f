// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cache stores weekly menus keyed by dining hall, meal type and week
// so the API is hit at most once per week. Entries live in a Store, either a
// local directory or an S3 bucket, and expire after a fixed TTL.
package cache
