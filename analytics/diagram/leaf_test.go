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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deepflowio/apm-analytics/analytics/config"
)

func defaultCallGraphConfig() *config.CallGraph {
	return &config.DefaultConfig().AnalyticsConfig.CallGraph
}

func TestFormatDuration(t *testing.T) {
	for _, tc := range []struct {
		ns   float64
		want string
	}{
		{0, "0ms"},
		{1.5e6, "2ms"},
		{999e6, "999ms"},
		{1e9, "1.00s"},
		{60e9, "1m0.00s"},
		{90.5e9, "1m30.50s"},
		{3600e9, "1h0m"},
		{3723e9, "1h2m"},
	} {
		if got := FormatDuration(tc.ns); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.ns, got, tc.want)
		}
	}
}

func TestColor(t *testing.T) {
	c := NewColorScorer(defaultCallGraphConfig().Color)
	for _, tc := range []struct {
		score      float64
		background bool
		want       string
	}{
		{1, false, "#b20000"},
		{2, false, "#b20000"},
		{0, false, "#b2b2b2"},
		{-1, false, "#00b200"},
		{0.1, false, "#b28559"},
		{0, true, "#ededed"},
		{1, true, "#edd5d5"},
	} {
		if got := c.Color(tc.score, tc.background); got != tc.want {
			t.Errorf("Color(%v, %v) = %s, want %s", tc.score, tc.background, got, tc.want)
		}
	}
}

func TestNodeSize(t *testing.T) {
	s := NewNodeSizer(defaultCallGraphConfig().Size)

	w, h := s.Size(0)
	assert.InDelta(t, 0.5, w, 1e-9)
	assert.InDelta(t, 0.5, h, 1e-9)

	w, h = s.Size(1)
	assert.InDelta(t, 2.3, w, 1e-9)
	assert.InDelta(t, 0.5, h, 1e-9)

	w, _ = s.Size(0.5)
	assert.InDelta(t, 1.4, w, 1e-9)

	// clamped
	w, _ = s.Size(3)
	assert.InDelta(t, 2.3, w, 1e-9)
	w, _ = s.Size(-1)
	assert.InDelta(t, 0.5, w, 1e-9)
}
