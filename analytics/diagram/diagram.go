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
	"github.com/mitchellh/mapstructure"
	"github.com/op/go-logging"
	"github.com/pkg/errors"

	"github.com/deepflowio/apm-analytics/analytics/common"
	"github.com/deepflowio/apm-analytics/analytics/config"
	"github.com/deepflowio/apm-analytics/analytics/model"
)

var log = logging.MustGetLogger("diagram")

// Data is the already-queried input of a diagram: a call-stack tree for
// call graphs, or bucketed rows for tendency charts.
type Data struct {
	Tree *model.FunctionTree
	Rows []map[string]interface{}
}

type Options struct {
	DataMode string `mapstructure:"data_mode"`
}

// DecodeOptions reads the loose options map passed by the presentation layer.
func DecodeOptions(raw map[string]interface{}) (Options, error) {
	options := Options{DataMode: common.DATA_MODE_RAW}
	if raw == nil {
		return options, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &options,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return options, err
	}
	if err := decoder.Decode(raw); err != nil {
		return options, errors.Wrap(err, "decode diagram options")
	}
	return options, nil
}

type Diagrammer interface {
	Draw(data *Data, options Options) (interface{}, error)
	Diff(base, other *Data, options Options) (interface{}, error)
}

// NewDiagrammer selects the diagram strategy for a kind. A nil renderer
// falls back to the dot binary configured in cfg.
func NewDiagrammer(kind string, cfg *config.CallGraph, renderer Renderer) (Diagrammer, error) {
	switch kind {
	case common.DIAGRAM_CALLGRAPH:
		if cfg == nil {
			cfg = &config.DefaultConfig().AnalyticsConfig.CallGraph
		}
		if renderer == nil {
			renderer = NewDotRenderer(cfg.Renderer)
		}
		return NewCallGraphDiagrammer(cfg, renderer), nil
	case common.DIAGRAM_TENDENCY:
		return &TendencyDiagrammer{}, nil
	}
	return nil, errors.Wrapf(common.ErrUnknownDiagram, "%q", kind)
}
