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

package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/openthread/netdim/dimensioning"
	"github.com/openthread/netdim/logger"
	"github.com/openthread/netdim/progctx"
	"github.com/openthread/netdim/project"
)

const (
	Prompt = "> "
)

type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputYaml  OutputFormat = "yaml"
)

type CommandContext struct {
	context.Context
	*Command
	rt     *CmdRunner
	err    error
	output io.Writer
}

// row is one named quantity of a command result.
type row struct {
	Name  string
	Value interface{}
	Unit  string
}

func (cc *CommandContext) outputStr(msg string) {
	_, _ = fmt.Fprint(cc.output, msg)
}

func (cc *CommandContext) outputf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cc.output, format, args...)
}

func (cc *CommandContext) errorf(format string, args ...interface{}) {
	cc.error(errors.Errorf(format, args...))
}

func (cc *CommandContext) error(err error) {
	if err != nil {
		if cc.err != nil { // if previous error, print it now and keep the last.
			cc.outputf("Error: %s\n", cc.err)
		}
		cc.err = err
	}
}

// Err returns the last error that occurred during command execution.
func (cc *CommandContext) Err() error {
	return cc.err
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// outputRows writes the rows as a table, or as a YAML mapping in YAML output mode.
func (cc *CommandContext) outputRows(rows []row) {
	if cc.rt.format == OutputYaml {
		doc := &yaml.Node{Kind: yaml.MappingNode}
		for _, r := range rows {
			var value yaml.Node
			logger.PanicIfError(value.Encode(r.Value))
			doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: r.Name}, &value)
		}
		cc.outputItemsAsYaml(doc)
		return
	}

	table := tablewriter.NewWriter(cc.output)
	table.SetHeader([]string{"quantity", "value", "unit"})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, r := range rows {
		table.Append([]string{r.Name, formatValue(r.Value), r.Unit})
	}
	table.Render()
}

func (cc *CommandContext) outputItemsAsYaml(items interface{}) {
	data, err := yaml.Marshal(items)
	logger.PanicIfError(err)

	_, err = cc.output.Write(data)
	logger.PanicIfError(err)
}

type CmdRunner struct {
	ctx     *progctx.ProgCtx
	engine  *dimensioning.Engine
	project *project.File
	report  *project.Report
	format  OutputFormat
	help    Help
}

func NewCmdRunner(ctx *progctx.ProgCtx, engine *dimensioning.Engine) *CmdRunner {
	return &CmdRunner{
		ctx:    ctx,
		engine: engine,
		format: OutputTable,
		help:   newHelp(),
	}
}

// SetProject makes f the project used by the run and save commands.
func (rt *CmdRunner) SetProject(f *project.File) {
	rt.project = f
}

// Project returns the loaded project, or nil.
func (rt *CmdRunner) Project() *project.File {
	return rt.project
}

func (rt *CmdRunner) Engine() *dimensioning.Engine {
	return rt.engine
}

// Report returns the report of the last run command, or nil.
func (rt *CmdRunner) Report() *project.Report {
	return rt.report
}

func (rt *CmdRunner) SetOutputFormat(format OutputFormat) {
	rt.format = format
}

func (rt *CmdRunner) HandleCommand(cmdline string, output io.Writer) error {
	if rt.ctx.Err() == nil {
		cmd := Command{}
		if err := parseBytes([]byte(cmdline), &cmd); err != nil {
			if _, err := fmt.Fprintf(output, "Error: %v\n", err); err != nil {
				return err
			}
		} else {
			rt.execute(&cmd, output)
		}
	}
	return rt.ctx.Err()
}

func (rt *CmdRunner) GetPrompt() string {
	return Prompt
}

func (rt *CmdRunner) execute(cmd *Command, output io.Writer) {
	cc := &CommandContext{
		Context: rt.ctx,
		Command: cmd,
		rt:      rt,
		output:  output,
	}

	defer func() {
		if cc.Err() != nil {
			cc.outputf("Error: %v\n", cc.Err())
		} else {
			cc.outputf("Done\n")
		}
	}()

	defer func() {
		rerr := recover()

		if rerr != nil {
			if err, ok := rerr.(error); ok {
				cc.err = errors.Wrapf(err, "panic: %v", err)
			} else {
				cc.err = errors.Errorf("panic: %v", rerr)
			}
		}
	}()

	if cmd.Gsm != nil {
		rt.executeGsm(cc, cmd.Gsm)
	} else if cmd.Umts != nil {
		rt.executeUmts(cc, cmd.Umts)
	} else if cmd.Hz != nil {
		rt.executeHertzian(cc, cmd.Hz)
	} else if cmd.Optical != nil {
		rt.executeOptical(cc, cmd.Optical)
	} else if cmd.Load != nil {
		rt.executeLoad(cc, cmd.Load)
	} else if cmd.Run != nil {
		rt.executeRun(cc, cmd.Run)
	} else if cmd.Save != nil {
		rt.executeSave(cc, cmd.Save)
	} else if cmd.Stats != nil {
		rt.executeStats(cc)
	} else if cmd.Format != nil {
		rt.executeFormat(cc, cmd.Format)
	} else if cmd.LogLevel != nil {
		rt.executeLogLevel(cc, cmd.LogLevel)
	} else if cmd.Help != nil {
		rt.executeHelp(cc, cmd.Help)
	} else if cmd.Exit != nil {
		rt.executeExit(cc)
	} else {
		logger.Panicf("unimplemented command: %#v", cmd)
	}
}

func unquote(s string) string {
	return strings.Trim(s, "\"`")
}

func (rt *CmdRunner) executeLoad(cc *CommandContext, cmd *LoadCmd) {
	f, err := project.Load(unquote(cmd.Path))
	if err != nil {
		cc.error(err)
		return
	}
	rt.project = f
	rt.report = nil
	cc.outputf("loaded %d scenarios\n", len(f.Scenarios))
}

func (rt *CmdRunner) executeRun(cc *CommandContext, cmd *RunCmd) {
	if rt.project == nil {
		cc.errorf("no project loaded")
		return
	}
	names := make([]string, 0, len(cmd.Scenarios))
	for _, name := range cmd.Scenarios {
		names = append(names, unquote(name))
	}

	report, err := project.Run(rt.engine, rt.project, names...)
	if report != nil {
		rt.report = report
		rt.outputReport(cc, report)
	}
	cc.error(err)
}

func (rt *CmdRunner) outputReport(cc *CommandContext, report *project.Report) {
	if rt.format == OutputYaml {
		cc.outputItemsAsYaml(report)
		return
	}

	table := tablewriter.NewWriter(cc.output)
	table.SetHeader([]string{"scenario", "technology", "summary", "feasible"})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for _, res := range report.Results {
		summary, feasible := summarize(res)
		table.Append([]string{res.Name, res.Technology, summary, feasible})
	}
	table.Render()
}

// summarize returns the headline figures of a scenario result and whether it is feasible.
func summarize(res project.ScenarioResult) (string, string) {
	switch {
	case res.Error != "":
		return "error: " + res.Error, "-"
	case res.GSM != nil:
		r := res.GSM
		return fmt.Sprintf("radius %s km, %s BTS, %d ch/BTS", formatValue(r.CellRadius),
			formatValue(r.BtsCount), r.ChannelsPerBts), "-"
	case res.UMTS != nil:
		r := res.UMTS
		s := fmt.Sprintf("radius %s km, %s sites, %s users/cell", formatValue(r.Coverage.CellRadius),
			formatValue(r.SiteCount), formatValue(r.UsersPerCell))
		if r.RadiusFallback {
			s += " (fallback radius)"
		}
		return s, "-"
	case res.Hertzian != nil:
		r := res.Hertzian
		return fmt.Sprintf("margin %s dB, availability %s %%", formatValue(r.LinkMargin),
			formatValue(r.Availability.Availability)), strconv.FormatBool(r.Feasible)
	case res.Optical != nil:
		r := res.Optical
		return fmt.Sprintf("margin %s dB, range %s km", formatValue(r.PowerMargin),
			formatValue(r.MaxRange)), strconv.FormatBool(r.Feasible)
	default:
		return "", "-"
	}
}

func (rt *CmdRunner) executeSave(cc *CommandContext, cmd *SaveCmd) {
	if rt.report == nil {
		cc.errorf("nothing to save, use 'run' first")
		return
	}
	path := unquote(cmd.Path)
	cc.error(rt.report.Save(path, project.ReportFormatForPath(path)))
}

func (rt *CmdRunner) executeStats(cc *CommandContext) {
	families, err := rt.engine.Gather()
	if err != nil {
		cc.error(err)
		return
	}

	var rows []row
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			sort.Strings(labels)
			rows = append(rows, row{
				Name:  fmt.Sprintf("%s{%s}", mf.GetName(), strings.Join(labels, ",")),
				Value: m.GetCounter().GetValue(),
			})
		}
	}
	cc.outputRows(rows)
}

func (rt *CmdRunner) executeFormat(cc *CommandContext, cmd *FormatCmd) {
	if cmd.Format == "" {
		cc.outputf("%s\n", rt.format)
	} else {
		rt.format = OutputFormat(cmd.Format)
	}
}

func (rt *CmdRunner) executeLogLevel(cc *CommandContext, cmd *LogLevelCmd) {
	if cmd.Level == "" {
		cc.outputf("%v\n", logger.GetLevelString(logger.GetLevel()))
		return
	}
	level, err := logger.ParseLevelString(cmd.Level)
	if err != nil {
		cc.error(err)
		return
	}
	logger.SetLevel(level)
}

func (rt *CmdRunner) executeHelp(cc *CommandContext, cmd *HelpCmd) {
	if len(cmd.HelpTopic) > 0 {
		cc.outputStr(rt.help.outputCommandHelp(cmd.HelpTopic))
	} else {
		cc.outputStr(rt.help.outputGeneralHelp())
	}
}

func (rt *CmdRunner) executeExit(cc *CommandContext) {
	rt.ctx.Cancel("exit")
}
