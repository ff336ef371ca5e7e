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

package config

import (
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/op/go-logging"
	"gopkg.in/yaml.v2"
)

var log = logging.MustGetLogger("config")

type Config struct {
	AnalyticsConfig AnalyticsConfig `yaml:"analytics"`
}

type AnalyticsConfig struct {
	LogFile     string      `default:"/var/log/analytics.log" yaml:"log-file"`
	LogLevel    string      `default:"info" yaml:"log-level"`
	Calculation Calculation `yaml:"calculation"`
	CallGraph   CallGraph   `yaml:"call-graph"`
}

type Calculation struct {
	Apdex Apdex `yaml:"apdex"`
}

type Apdex struct {
	SatisfiedRate   float64 `default:"0.75" yaml:"satisfied-rate"`
	ToleratingRate  float64 `default:"0.5" yaml:"tolerating-rate"`
	FrustratingRate float64 `default:"0.25" yaml:"frustrating-rate"`
}

type CallGraph struct {
	Color    Color    `yaml:"color"`
	Size     Size     `yaml:"size"`
	Renderer Renderer `yaml:"renderer"`
}

type Color struct {
	Shift            float64 `default:"0.7" yaml:"shift"`
	BgSaturation     float64 `default:"0.1" yaml:"bg-saturation"`
	BgValue          float64 `default:"0.93" yaml:"bg-value"`
	FgSaturation     float64 `default:"1.0" yaml:"fg-saturation"`
	FgValue          float64 `default:"0.7" yaml:"fg-value"`
	NeutralThreshold float64 `default:"0.2" yaml:"neutral-threshold"`
}

type Size struct {
	MaxSize  float64 `default:"2" yaml:"max-size"`
	BaseSize float64 `default:"0.5" yaml:"base-size"`
	MinSize  float64 `default:"0.2" yaml:"min-size"`
}

type Renderer struct {
	DotPath string        `default:"dot" yaml:"dot-path"`
	Format  string        `default:"svg" yaml:"format"`
	Timeout time.Duration `default:"30s" yaml:"timeout"`
}

func (c *Config) expendEnv() {
	pattern := regexp.MustCompile(`\$\{(.+?)\}`)
	expendStruct(reflect.ValueOf(&c.AnalyticsConfig).Elem(), pattern)
}

func expendStruct(v reflect.Value, pattern *regexp.Regexp) {
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			fieldStr := field.String()
			for _, m := range pattern.FindAllStringSubmatch(fieldStr, -1) {
				fieldStr = strings.Replace(fieldStr, m[0], os.Getenv(m[1]), 1)
			}
			field.SetString(fieldStr)
		case reflect.Struct:
			expendStruct(field, pattern)
		}
	}
}

func inUnitRange(v float64) bool {
	return v >= 0 && v <= 1
}

func (c *Config) Validate() error {
	apdex := c.AnalyticsConfig.Calculation.Apdex
	for name, rate := range map[string]float64{
		"satisfied-rate":   apdex.SatisfiedRate,
		"tolerating-rate":  apdex.ToleratingRate,
		"frustrating-rate": apdex.FrustratingRate,
	} {
		if !inUnitRange(rate) {
			return fmt.Errorf("apdex %s %v out of range [0, 1]", name, rate)
		}
	}
	if apdex.ToleratingRate > apdex.SatisfiedRate {
		return fmt.Errorf("apdex tolerating-rate %v greater than satisfied-rate %v", apdex.ToleratingRate, apdex.SatisfiedRate)
	}

	color := c.AnalyticsConfig.CallGraph.Color
	for name, v := range map[string]float64{
		"shift":             color.Shift,
		"bg-saturation":     color.BgSaturation,
		"bg-value":          color.BgValue,
		"fg-saturation":     color.FgSaturation,
		"fg-value":          color.FgValue,
		"neutral-threshold": color.NeutralThreshold,
	} {
		if !inUnitRange(v) {
			return fmt.Errorf("color %s %v out of range [0, 1]", name, v)
		}
	}

	size := c.AnalyticsConfig.CallGraph.Size
	if size.MinSize > size.MaxSize {
		return fmt.Errorf("node min-size %v greater than max-size %v", size.MinSize, size.MaxSize)
	}
	if size.BaseSize <= 0 {
		return fmt.Errorf("node base-size %v must be positive", size.BaseSize)
	}

	if c.AnalyticsConfig.CallGraph.Renderer.Format == "" {
		return fmt.Errorf("renderer format is empty")
	}
	return nil
}

func (c *Config) Load(path string) error {
	configBytes, err := os.ReadFile(path)
	if err != nil {
		log.Error("Read config file error:", err, path)
		return err
	}

	if err = yaml.Unmarshal(configBytes, c); err != nil {
		log.Error("Unmarshal yaml error:", err)
		return err
	}

	if err = c.Validate(); err != nil {
		log.Error(err)
		return err
	}
	c.expendEnv()
	return nil
}

func DefaultConfig() *Config {
	cfg := &Config{}
	if err := SetDefault(cfg); err != nil {
		log.Error(err)
		os.Exit(1)
	}
	return cfg
}
