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

import (
	"fmt"
)

// FunctionNode is one frame of a merged call-stack tree. Value is the
// cumulative weight of the frame and its callees, SelfTime its own share.
type FunctionNode struct {
	ID       int
	Name     string
	Value    int64
	SelfTime int64
	Children []*FunctionNode
}

type SampleType struct {
	Type string `json:"type"`
	Unit string `json:"unit"`
}

type FunctionTree struct {
	Root       *FunctionNode
	NodesMap   map[int]*FunctionNode
	SampleType SampleType

	order []int
}

// NewFunctionTree indexes every node reachable from root, in depth-first
// pre-order, and checks the id and weight invariants of the tree.
func NewFunctionTree(root *FunctionNode) (*FunctionTree, error) {
	if root == nil {
		return nil, fmt.Errorf("function tree has no root")
	}
	t := &FunctionTree{
		Root:     root,
		NodesMap: make(map[int]*FunctionNode),
	}
	stack := []*FunctionNode{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := t.NodesMap[node.ID]; ok {
			return nil, fmt.Errorf("duplicate function node id %d", node.ID)
		}
		if node.SelfTime < 0 || node.Value < node.SelfTime {
			return nil, fmt.Errorf("function node %d (%s) has value %d and self time %d", node.ID, node.Name, node.Value, node.SelfTime)
		}
		t.NodesMap[node.ID] = node
		t.order = append(t.order, node.ID)
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}
	}
	return t, nil
}

func (t *FunctionTree) Nodes() []*FunctionNode {
	nodes := make([]*FunctionNode, 0, len(t.order))
	for _, id := range t.order {
		nodes = append(nodes, t.NodesMap[id])
	}
	return nodes
}

func (t *FunctionTree) Node(id int) (*FunctionNode, bool) {
	n, ok := t.NodesMap[id]
	return n, ok
}

func (t *FunctionTree) Len() int {
	return len(t.order)
}
