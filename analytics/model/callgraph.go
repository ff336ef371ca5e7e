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

package model

type CallGraphNode struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Value int64  `json:"value"`
	Self  int64  `json:"self"`
}

type CallGraphEdge struct {
	SourceID int   `json:"source_id"`
	TargetID int   `json:"target_id"`
	Value    int64 `json:"value"`
}

type CallGraph struct {
	Nodes        []CallGraphNode `json:"nodes"`
	Edges        []CallGraphEdge `json:"edges"`
	CallGraphAll int64           `json:"call_graph_all"`
}

// CallGraphImage flattens the sample type's `type` and `unit` into the
// top level, next to the image.
type CallGraphImage struct {
	CallGraphData string `json:"call_graph_data"`
	CallGraphAll  int64  `json:"call_graph_all"`
	SampleType
}
