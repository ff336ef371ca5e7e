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
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/deepflowio/apm-analytics/analytics/common"
	"github.com/deepflowio/apm-analytics/analytics/config"
	"github.com/deepflowio/apm-analytics/analytics/model"
	"github.com/deepflowio/apm-analytics/libs/pool"
)

// Renderer rasterizes a Graphviz DOT description into image bytes.
type Renderer interface {
	Render(graph string) ([]byte, error)
}

type RendererFunc func(graph string) ([]byte, error)

func (f RendererFunc) Render(graph string) ([]byte, error) {
	return f(graph)
}

// DotRenderer pipes the description through the graphviz dot binary.
type DotRenderer struct {
	Path    string
	Format  string
	Timeout time.Duration
}

func NewDotRenderer(cfg config.Renderer) *DotRenderer {
	return &DotRenderer{Path: cfg.DotPath, Format: cfg.Format, Timeout: cfg.Timeout}
}

func (r *DotRenderer) Render(graph string) ([]byte, error) {
	ctx := context.Background()
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Path, "-T"+r.Format)
	cmd.Stdin = strings.NewReader(graph)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, "%s -T%s: %s", r.Path, r.Format, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

var titlePattern = regexp.MustCompile(`(?s)<title>.*?</title>`)

var imageBuffers = pool.NewBufferPool("call_graph_image")

// CallGraphRenderer turns a call graph into a DOT description, hands it to
// the Renderer and returns the image as text with <title> elements removed
// so browsers show the node tooltips instead.
type CallGraphRenderer struct {
	renderer    Renderer
	colorScorer *ColorScorer
	nodeSizer   *NodeSizer
}

func NewCallGraphRenderer(renderer Renderer, colorScorer *ColorScorer, nodeSizer *NodeSizer) *CallGraphRenderer {
	return &CallGraphRenderer{
		renderer:    renderer,
		colorScorer: colorScorer,
		nodeSizer:   nodeSizer,
	}
}

func ratioOf(value, all int64) float64 {
	if all == 0 {
		return 0
	}
	return float64(value) / float64(all)
}

func quoteDOT(s string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"\"", "\\\"",
		"\n", "\\n",
	)
	return "\"" + replacer.Replace(s) + "\""
}

func edgeTooltip(tree *model.FunctionTree, edge model.CallGraphEdge) string {
	source, target := "unknown", "unknown"
	if n, ok := tree.Node(edge.SourceID); ok {
		source = n.Name
	}
	if n, ok := tree.Node(edge.TargetID); ok {
		target = n.Name
	}
	return source + "->" + target
}

// Describe builds the DOT description of the graph.
func (r *CallGraphRenderer) Describe(tree *model.FunctionTree, graph *model.CallGraph) string {
	var sb strings.Builder
	sb.WriteString("digraph CallGraph {\n")
	sb.WriteString("    node [shape=rectangle];\n")
	sb.WriteString("\n")

	all := FormatDuration(float64(graph.CallGraphAll))
	for _, node := range graph.Nodes {
		ratio := ratioOf(node.Value, graph.CallGraphAll)
		label := fmt.Sprintf("%s\n%s of %s (%.2f%%)", node.Name, FormatDuration(float64(node.Value)), all, ratio*100)
		width, height := r.nodeSizer.Size(ratio)
		sb.WriteString(fmt.Sprintf(
			"    %d [label=%s, style=filled, fillcolor=%s, width=%s, height=%s, tooltip=%s];\n",
			node.ID, quoteDOT(label), quoteDOT(r.colorScorer.Color(ratio, false)),
			quoteDOT(fmt.Sprint(width)), quoteDOT(fmt.Sprint(height)), quoteDOT(node.Name),
		))
	}

	sb.WriteString("\n")

	for _, edge := range graph.Edges {
		sb.WriteString(fmt.Sprintf(
			"    %d -> %d [label=%s, tooltip=%s];\n",
			edge.SourceID, edge.TargetID,
			quoteDOT(FormatDuration(float64(edge.Value))), quoteDOT(edgeTooltip(tree, edge)),
		))
	}

	sb.WriteString("}\n")
	return sb.String()
}

func (r *CallGraphRenderer) Render(tree *model.FunctionTree, graph *model.CallGraph) (string, error) {
	image, err := r.renderer.Render(r.Describe(tree, graph))
	if err != nil {
		log.Errorf("render call graph failed: %v", err)
		return "", errors.Wrap(err, "render call graph")
	}
	text, err := decodeImage(image)
	if err != nil {
		log.Errorf("generate svg data failed: %v", err)
		return "", err
	}
	return titlePattern.ReplaceAllString(text, ""), nil
}

func decodeImage(image []byte) (string, error) {
	buf := imageBuffers.Get()
	defer imageBuffers.Put(buf)

	if _, err := io.Copy(buf, bytes.NewReader(image)); err != nil {
		return "", errors.Wrapf(common.ErrDecodeImage, "generate svg data: %v", err)
	}
	if !utf8.Valid(buf.Bytes()) {
		return "", errors.Wrap(common.ErrDecodeImage, "generate svg data: output is not valid utf-8")
	}
	return buf.String(), nil
}
