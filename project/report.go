// Copyright (c) 2024, The OTNS Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

package project

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/openthread/netdim/dimensioning"
	"github.com/openthread/netdim/logger"
	. "github.com/openthread/netdim/types"
)

type ReportFormat string

const (
	FormatYaml ReportFormat = "yaml"
	FormatJson ReportFormat = "json"
)

func ParseReportFormat(s string) (ReportFormat, error) {
	switch ReportFormat(s) {
	case FormatYaml, "yml":
		return FormatYaml, nil
	case FormatJson:
		return FormatJson, nil
	default:
		return "", errors.Errorf("unknown report format %q", s)
	}
}

// ReportFormatForPath returns json for a .json file name and yaml otherwise.
func ReportFormatForPath(path string) ReportFormat {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJson
	}
	return FormatYaml
}

// ScenarioResult is the outcome of one scenario. Exactly one result section, or Error, is set.
type ScenarioResult struct {
	Name       string                       `yaml:"name" json:"name"`
	Technology string                       `yaml:"technology" json:"technology"`
	GSM        *dimensioning.GSMResult      `yaml:"gsm,omitempty" json:"gsm,omitempty"`
	UMTS       *dimensioning.UMTSResult     `yaml:"umts,omitempty" json:"umts,omitempty"`
	Hertzian   *dimensioning.HertzianResult `yaml:"hertzian,omitempty" json:"hertzian,omitempty"`
	Optical    *dimensioning.OpticalResult  `yaml:"optical,omitempty" json:"optical,omitempty"`
	Error      string                       `yaml:"error,omitempty" json:"error,omitempty"`
}

// Report collects the results of a project run.
type Report struct {
	Project string           `yaml:"project" json:"project"`
	Results []ScenarioResult `yaml:"results" json:"results"`
}

// Run dimensions the named scenarios of f, or all of them when no names are given. A failing
// scenario is recorded in the report and the remaining ones still run; the returned error then
// reports how many failed.
func Run(engine *dimensioning.Engine, f *File, names ...string) (*Report, error) {
	var scenarios []*Scenario
	if len(names) == 0 {
		for i := range f.Scenarios {
			scenarios = append(scenarios, &f.Scenarios[i])
		}
	} else {
		for _, name := range names {
			sc := f.Find(name)
			if sc == nil {
				return nil, errors.Errorf("scenario %q not found", name)
			}
			scenarios = append(scenarios, sc)
		}
	}

	report := &Report{Project: f.Name, Results: make([]ScenarioResult, 0, len(scenarios))}
	failed := 0
	for _, sc := range scenarios {
		res := RunScenario(engine, sc)
		if res.Error != "" {
			logger.Named(sc.Name).Warnf("%s", res.Error)
			failed++
		}
		report.Results = append(report.Results, res)
	}

	logger.AssertTrue(len(report.Results) == len(scenarios))
	if failed > 0 {
		return report, errors.Errorf("%d of %d scenarios failed - see the report", failed, len(scenarios))
	}
	return report, nil
}

// RunScenario dimensions a single scenario.
func RunScenario(engine *dimensioning.Engine, sc *Scenario) ScenarioResult {
	res := ScenarioResult{Name: sc.Name}
	tech, err := sc.Technology()
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Technology = tech.String()

	switch tech {
	case TechnologyGSM:
		var r dimensioning.GSMResult
		if r, err = engine.DimensionGSM(sc.GSM.Request()); err == nil {
			res.GSM = &r
		}
	case TechnologyUMTS:
		var r dimensioning.UMTSResult
		if r, err = engine.DimensionUMTS(sc.UMTS.Request()); err == nil {
			res.UMTS = &r
		}
	case TechnologyHertzian:
		var r dimensioning.HertzianResult
		if r, err = engine.DimensionHertzian(sc.Hertzian.Request()); err == nil {
			res.Hertzian = &r
		}
	case TechnologyOptical:
		var r dimensioning.OpticalResult
		if r, err = engine.DimensionOptical(sc.Optical.Request()); err == nil {
			res.Optical = &r
		}
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

// Write encodes the report. JSON has no representation for Inf and NaN, so these are written
// as the strings "+Inf", "-Inf" and "NaN".
func (r *Report) Write(w io.Writer, format ReportFormat) error {
	switch format {
	case FormatYaml:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return errors.Wrapf(err, "encode report")
		}
		return enc.Close()
	case FormatJson:
		doc, err := jsonDocument(r)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(doc, "", "    ")
		if err != nil {
			return errors.Wrapf(err, "encode report")
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	default:
		return errors.Errorf("unknown report format %q", format)
	}
}

// Save writes the report to a file.
func (r *Report) Save(path string, format ReportFormat) error {
	fp, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "save report")
	}
	if err = r.Write(fp, format); err != nil {
		_ = fp.Close()
		return err
	}
	return errors.Wrapf(fp.Close(), "save report")
}

// jsonDocument converts r into generic maps and slices through its YAML form, keeping the field
// names, with non-finite numbers replaced by strings.
func jsonDocument(r *Report) (interface{}, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, errors.Wrapf(err, "encode report")
	}
	var doc interface{}
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "encode report")
	}
	return finite(doc), nil
}

func finite(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, e := range val {
			val[k] = finite(e)
		}
	case []interface{}:
		for i, e := range val {
			val[i] = finite(e)
		}
	case float64:
		switch {
		case math.IsNaN(val):
			return "NaN"
		case math.IsInf(val, 1):
			return "+Inf"
		case math.IsInf(val, -1):
			return "-Inf"
		}
	}
	return v
}
