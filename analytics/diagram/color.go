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

	"github.com/deepflowio/apm-analytics/analytics/config"
)

// ColorScorer maps a score in [-1, 1] to a fill color. Positive scores go
// towards red, negative towards green, scores near 0 stay grey.
type ColorScorer struct {
	// exponent 1-Shift is applied to |score| to push it away from grey
	Shift float64
	// saturation and value (hsv) for background and foreground colors
	BgSaturation float64
	BgValue      float64
	FgSaturation float64
	FgValue      float64
	// below this |score| saturation fades out linearly
	NeutralThreshold float64
}

func NewColorScorer(cfg config.Color) *ColorScorer {
	return &ColorScorer{
		Shift:            cfg.Shift,
		BgSaturation:     cfg.BgSaturation,
		BgValue:          cfg.BgValue,
		FgSaturation:     cfg.FgSaturation,
		FgValue:          cfg.FgValue,
		NeutralThreshold: cfg.NeutralThreshold,
	}
}

func (c *ColorScorer) Color(score float64, background bool) string {
	saturation, value := c.FgSaturation, c.FgValue
	if background {
		saturation, value = c.BgSaturation, c.BgValue
	}

	score = math.Max(-1.0, math.Min(1.0, score))

	if math.Abs(score) < c.NeutralThreshold {
		saturation *= math.Abs(score) / c.NeutralThreshold
	}

	if score > 0.0 {
		score = math.Pow(score, 1.0-c.Shift)
	}
	if score < 0.0 {
		score = -math.Pow(-score, 1.0-c.Shift)
	}

	var r, g, b float64
	if score < 0.0 {
		g = value
		r = value * (1 + saturation*score)
	} else {
		r = value
		g = value * (1 - saturation*score)
	}
	b = value * (1 - saturation)
	return fmt.Sprintf("#%02x%02x%02x", int(r*255.0), int(g*255.0), int(b*255.0))
}
