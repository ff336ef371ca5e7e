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
	"github.com/pkg/errors"

	"github.com/deepflowio/apm-analytics/analytics/common"
	"github.com/deepflowio/apm-analytics/analytics/config"
	"github.com/deepflowio/apm-analytics/analytics/model"
)

type CallGraphDiagrammer struct {
	builder  *CallGraphBuilder
	renderer *CallGraphRenderer
}

func NewCallGraphDiagrammer(cfg *config.CallGraph, renderer Renderer) *CallGraphDiagrammer {
	return &CallGraphDiagrammer{
		builder:  &CallGraphBuilder{},
		renderer: NewCallGraphRenderer(renderer, NewColorScorer(cfg.Color), NewNodeSizer(cfg.Size)),
	}
}

// Draw returns the raw *model.CallGraph, or a *model.CallGraphImage when
// options ask for the image data mode.
func (d *CallGraphDiagrammer) Draw(data *Data, options Options) (interface{}, error) {
	if data == nil || data.Tree == nil {
		return nil, errors.New("call graph needs a function tree")
	}
	graph := d.builder.Build(data.Tree)
	if options.DataMode != common.DATA_MODE_IMAGE {
		return graph, nil
	}

	image, err := d.renderer.Render(data.Tree, graph)
	if err != nil {
		return nil, err
	}
	return &model.CallGraphImage{
		CallGraphData: image,
		CallGraphAll:  graph.CallGraphAll,
		SampleType:    data.Tree.SampleType,
	}, nil
}

func (d *CallGraphDiagrammer) Diff(base, other *Data, options Options) (interface{}, error) {
	log.Warning("call graph diff requested")
	return nil, errors.Wrap(common.ErrNotSupported, "call graph does not support diff mode")
}
