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
	"github.com/deepflowio/apm-analytics/analytics/model"
)

type CallGraphBuilder struct{}

// BuildEdges walks the tree breadth first from root and emits one edge
// per (parent, child) pair, valued with the child's cumulative value.
func (b *CallGraphBuilder) BuildEdges(root *model.FunctionNode) []model.CallGraphEdge {
	edges := []model.CallGraphEdge{}
	if root == nil {
		return edges
	}
	queue := []*model.FunctionNode{root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, child := range node.Children {
			edges = append(edges, model.CallGraphEdge{
				SourceID: node.ID,
				TargetID: child.ID,
				Value:    child.Value,
			})
			queue = append(queue, child)
		}
	}
	return edges
}

func (b *CallGraphBuilder) BuildNodes(tree *model.FunctionTree) []model.CallGraphNode {
	nodes := make([]model.CallGraphNode, 0, tree.Len())
	for _, node := range tree.Nodes() {
		nodes = append(nodes, model.CallGraphNode{
			ID:    node.ID,
			Name:  node.Name,
			Value: node.Value,
			Self:  node.SelfTime,
		})
	}
	return nodes
}

func (b *CallGraphBuilder) Build(tree *model.FunctionTree) *model.CallGraph {
	return &model.CallGraph{
		Nodes:        b.BuildNodes(tree),
		Edges:        b.BuildEdges(tree.Root),
		CallGraphAll: tree.Root.Value,
	}
}
