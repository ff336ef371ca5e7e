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

// ProfileTree is the flattened tree produced by the profile querier:
// node_values rows are [function_id, parent_node_id, self_value, total_value].
type ProfileTree struct {
	Functions      []string   `json:"functions"`
	FunctionTypes  []string   `json:"function_types"`
	FunctionValues ValueTable `json:"function_values"`
	NodeValues     ValueTable `json:"node_values"`
}

type ValueTable struct {
	Columns []string `json:"columns"`
	Values  [][]int  `json:"values"`
}

const (
	NODE_VALUE_FUNCTION_ID = iota
	NODE_VALUE_PARENT_NODE_ID
	NODE_VALUE_SELF_VALUE
	NODE_VALUE_TOTAL_VALUE
)
