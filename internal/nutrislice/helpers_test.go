// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package nutrislice

import "github.com/tidwall/gjson"

func parseResult(doc string) gjson.Result {
	return gjson.Parse(doc)
}
