/*
 * Copyright (c) 2024 Yunshan Networks
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package diagram

import (
	"fmt"
	"math"
)

// FormatDuration renders a nanosecond weight the way call graph labels
// show it: 1h2m, 1m3.50s, 999ms or 1.50s.
func FormatDuration(nanoseconds float64) string {
	seconds := nanoseconds / 1e9

	hours := math.Floor(seconds / 3600)
	if hours >= 1 {
		remainingMinutes := math.Floor(math.Mod(seconds, 3600) / 60)
		return fmt.Sprintf("%dh%dm", int64(hours), int64(remainingMinutes))
	}

	minutes := math.Floor(seconds / 60)
	if minutes >= 1 {
		remainingSeconds := math.Mod(seconds, 60)
		return fmt.Sprintf("%dm%.2fs", int64(minutes), remainingSeconds)
	}

	milliseconds := seconds * 1000
	if milliseconds < 1000 {
		return fmt.Sprintf("%.0fms", milliseconds)
	}

	// never taken: anything below one millisecond already returned above
	microseconds := milliseconds * 1000
	if microseconds < 1000 {
		return fmt.Sprintf("%.0fμs", microseconds)
	}

	return fmt.Sprintf("%.2fs", seconds)
}
