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
	"strings"

	"github.com/op/go-logging"
	"github.com/pkg/errors"

	"github.com/deepflowio/apm-analytics/analytics/model"
)

var log = logging.MustGetLogger("profile")

const STACK_SEPARATOR = ";"

// LoadProfileTree rebuilds a FunctionTree from the flattened querier
// output. Node ids are the row indexes of node_values; the root is the
// row whose parent_node_id is -1.
func LoadProfileTree(tree model.ProfileTree) (*model.FunctionTree, error) {
	rows := tree.NodeValues.Values
	nodes := make([]*model.FunctionNode, len(rows))
	for i, row := range rows {
		if len(row) <= model.NODE_VALUE_TOTAL_VALUE {
			return nil, errors.Errorf("node %d has %d values", i, len(row))
		}
		functionID := row[model.NODE_VALUE_FUNCTION_ID]
		if functionID < 0 || functionID >= len(tree.Functions) {
			return nil, errors.Errorf("node %d refers to unknown function %d", i, functionID)
		}
		nodes[i] = &model.FunctionNode{
			ID:       i,
			Name:     tree.Functions[functionID],
			Value:    int64(row[model.NODE_VALUE_TOTAL_VALUE]),
			SelfTime: int64(row[model.NODE_VALUE_SELF_VALUE]),
		}
	}

	var root *model.FunctionNode
	for i, row := range rows {
		parentID := row[model.NODE_VALUE_PARENT_NODE_ID]
		if parentID < 0 {
			if root != nil {
				return nil, errors.Errorf("node %d and node %d are both roots", root.ID, i)
			}
			root = nodes[i]
			continue
		}
		if parentID >= len(nodes) || parentID == i {
			return nil, errors.Errorf("node %d has invalid parent %d", i, parentID)
		}
		nodes[parentID].Children = append(nodes[parentID].Children, nodes[i])
	}
	if root == nil {
		return nil, errors.New("profile tree has no root node")
	}

	functionTree, err := model.NewFunctionTree(root)
	if err != nil {
		return nil, errors.Wrap(err, "load profile tree")
	}
	if functionTree.Len() != len(nodes) {
		return nil, errors.Errorf("%d of %d nodes are not reachable from the root", len(nodes)-functionTree.Len(), len(nodes))
	}
	return functionTree, nil
}

// Stack is one folded call stack ("main;foo;bar", outermost frame first)
// with its sample value. When Compressed is set the stack is read from
// CompressedLocation, a zstd frame (base64 in json), and Location is ignored.
type Stack struct {
	Location           string `json:"location,omitempty"`
	CompressedLocation []byte `json:"compressed_location,omitempty"`
	Value              int64  `json:"value"`
	Compressed         bool   `json:"compressed"`
}

type stackNode struct {
	node     *model.FunctionNode
	children map[string]*stackNode
}

func newStackNode(id int, name string) *stackNode {
	return &stackNode{
		node:     &model.FunctionNode{ID: id, Name: name},
		children: make(map[string]*stackNode),
	}
}

// MergeStacks merges folded stacks into a FunctionTree under a root named
// rootName. Frames sharing the same path are merged, and only the leaf
// frame of a stack gets the stack's value as self time.
func MergeStacks(rootName string, stacks []Stack) (*model.FunctionTree, error) {
	root := newStackNode(0, rootName)
	nextID := 1

	locationBytes := []byte{}
	for i, stack := range stacks {
		if stack.Value < 0 {
			return nil, errors.Errorf("stack %d has negative value %d", i, stack.Value)
		}
		location := stack.Location
		if stack.Compressed {
			var err error
			locationBytes, err = ZstdDecompress(locationBytes, stack.CompressedLocation)
			if err != nil {
				return nil, errors.Wrapf(err, "decompress stack %d", i)
			}
			location = string(locationBytes)
		}
		if location == "" {
			log.Debugf("drop empty stack %d", i)
			continue
		}

		root.node.Value += stack.Value
		current := root
		for _, frame := range strings.Split(location, STACK_SEPARATOR) {
			child, ok := current.children[frame]
			if !ok {
				child = newStackNode(nextID, frame)
				nextID++
				current.children[frame] = child
				current.node.Children = append(current.node.Children, child.node)
			}
			child.node.Value += stack.Value
			current = child
		}
		current.node.SelfTime += stack.Value
	}

	return model.NewFunctionTree(root.node)
}
