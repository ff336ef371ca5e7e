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
	"math"

	"github.com/deepflowio/apm-analytics/analytics/config"
)

// NodeSizer widens call graph nodes with their share of the total.
// Width is BaseSize + ratio*(MaxSize-MinSize), so a ratio of 1 ends up
// wider than MaxSize; height stays at BaseSize.
type NodeSizer struct {
	MaxSize  float64
	BaseSize float64
	MinSize  float64
}

func NewNodeSizer(cfg config.Size) *NodeSizer {
	return &NodeSizer{
		MaxSize:  cfg.MaxSize,
		BaseSize: cfg.BaseSize,
		MinSize:  cfg.MinSize,
	}
}

func (s *NodeSizer) Size(ratio float64) (width, height float64) {
	ratio = math.Max(0, math.Min(1, ratio))
	return s.BaseSize + ratio*(s.MaxSize-s.MinSize), s.BaseSize
}
