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

package profile

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepflowio/apm-analytics/analytics/model"
)

func treeNames(tree *model.FunctionTree) []string {
	names := []string{}
	for _, n := range tree.Nodes() {
		names = append(names, n.Name)
	}
	return names
}

func TestLoadProfileTree(t *testing.T) {
	// parents are emitted after their children, as the querier does
	profileTree := model.ProfileTree{
		Functions: []string{"app", "main", "foo", "bar"},
		NodeValues: model.ValueTable{
			Columns: []string{"function_id", "parent_node_id", "self_value", "total_value"},
			Values: [][]int{
				{0, -1, 0, 10},
				{2, 2, 5, 5},
				{1, 0, 2, 10},
				{3, 2, 3, 3},
			},
		},
	}
	tree, err := LoadProfileTree(profileTree)
	require.NoError(t, err)
	assert.Equal(t, int64(10), tree.Root.Value)
	assert.Equal(t, []string{"app", "main", "foo", "bar"}, treeNames(tree))

	foo, ok := tree.Node(1)
	require.True(t, ok)
	assert.Equal(t, int64(5), foo.SelfTime)
}

func TestLoadProfileTreeInvalid(t *testing.T) {
	for _, tc := range []struct {
		name   string
		values [][]int
	}{
		{"no root", [][]int{{0, 1, 0, 1}, {0, 0, 0, 1}}},
		{"two roots", [][]int{{0, -1, 0, 1}, {0, -1, 0, 1}}},
		{"unknown function", [][]int{{7, -1, 0, 1}}},
		{"short row", [][]int{{0, -1, 0}}},
		{"self parent", [][]int{{0, -1, 0, 2}, {0, 1, 1, 1}}},
		{"unreachable cycle", [][]int{{0, -1, 0, 2}, {0, 2, 1, 1}, {0, 1, 1, 1}}},
		{"self above total", [][]int{{0, -1, 5, 1}}},
	} {
		_, err := LoadProfileTree(model.ProfileTree{
			Functions:  []string{"app"},
			NodeValues: model.ValueTable{Values: tc.values},
		})
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestMergeStacks(t *testing.T) {
	compressed, err := ZstdCompress(nil, []byte("main;baz"))
	require.NoError(t, err)

	tree, err := MergeStacks("app", []Stack{
		{Location: "main;foo", Value: 3},
		{Location: "main;bar", Value: 2},
		{Location: "main;foo", Value: 1},
		{Location: "", Value: 7},
		{CompressedLocation: compressed, Value: 4, Compressed: true},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), tree.Root.Value)
	assert.Equal(t, []string{"app", "main", "foo", "bar", "baz"}, treeNames(tree))

	mainNode, _ := tree.Node(1)
	assert.Equal(t, int64(10), mainNode.Value)
	assert.Equal(t, int64(0), mainNode.SelfTime)
	foo, _ := tree.Node(2)
	assert.Equal(t, int64(4), foo.Value)
	assert.Equal(t, int64(4), foo.SelfTime)
}

func TestMergeStacksErrors(t *testing.T) {
	_, err := MergeStacks("app", []Stack{{Location: "a", Value: -1}})
	assert.Error(t, err)

	_, err = MergeStacks("app", []Stack{{CompressedLocation: []byte("not zstd"), Value: 1, Compressed: true}})
	assert.Error(t, err)
}

func TestMergeStacksFromJSON(t *testing.T) {
	compressed, err := ZstdCompress(nil, []byte("main;foo"))
	require.NoError(t, err)

	data, err := json.Marshal([]Stack{
		{CompressedLocation: compressed, Value: 3, Compressed: true},
		{Location: "main;bar", Value: 2},
	})
	require.NoError(t, err)

	var stacks []Stack
	require.NoError(t, json.Unmarshal(data, &stacks))
	tree, err := MergeStacks("app", stacks)
	require.NoError(t, err)
	assert.Equal(t, int64(5), tree.Root.Value)
	assert.Equal(t, []string{"app", "main", "foo", "bar"}, treeNames(tree))
}

func TestZstdRoundTrip(t *testing.T) {
	compressed, err := ZstdCompress(nil, []byte("a;b;c"))
	require.NoError(t, err)
	out, err := ZstdDecompress(nil, compressed)
	require.NoError(t, err)
	assert.Equal(t, "a;b;c", string(out))
}
