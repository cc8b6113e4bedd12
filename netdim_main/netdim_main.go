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

package netdim_main

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/openthread/netdim/cli"
	"github.com/openthread/netdim/dimensioning"
	"github.com/openthread/netdim/logger"
	"github.com/openthread/netdim/progctx"
	"github.com/openthread/netdim/project"
)

type MainArgs struct {
	LogLevel     string
	LogFile      string
	ProjectFile  string
	ReportFile   string
	ReportFormat string
	OutputFormat string
	Batch        bool
	HistoryFile  string
	CacheSize    int
	FallbackKm   float64
}

func parseArgs(argv []string) (*MainArgs, error) {
	args := &MainArgs{}
	fs := pflag.NewFlagSet("netdim", pflag.ContinueOnError)
	fs.StringVar(&args.LogLevel, "log", "warn", "set logging level: trace, debug, info, warn, error.")
	fs.StringVar(&args.LogFile, "log-file", "", "also write the log to this file")
	fs.StringVarP(&args.ProjectFile, "project", "p", "", "load a project file (YAML) at startup")
	fs.StringVarP(&args.ReportFile, "report", "o", "", "write the report of the last project run to this file")
	fs.StringVar(&args.ReportFormat, "format", "", "report format: yaml or json. Default derives from the --report extension.")
	fs.StringVar(&args.OutputFormat, "output", string(cli.OutputTable), "console output format: table or yaml")
	fs.BoolVarP(&args.Batch, "batch", "b", false, "non-interactive: run the project, or read commands from stdin")
	fs.StringVar(&args.HistoryFile, "history", "", "console history file")
	fs.IntVar(&args.CacheSize, "cache-size", dimensioning.DefaultCacheSize, "number of memoised results, 0 disables the cache")
	fs.Float64Var(&args.FallbackKm, "umts-fallback-radius", dimensioning.DefaultUmtsFallbackRadiusKm, "UMTS cell radius (km) used when coverage gives no valid radius")

	if err := fs.Parse(argv); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, errors.Errorf("unexpected arguments: %v", fs.Args())
	}
	switch cli.OutputFormat(args.OutputFormat) {
	case cli.OutputTable, cli.OutputYaml:
	default:
		return nil, errors.Errorf("invalid output format: %s", args.OutputFormat)
	}
	if args.CacheSize < 0 {
		return nil, errors.Errorf("invalid cache size: %d", args.CacheSize)
	}
	return args, nil
}

// reportFormat returns the explicit --format, or the one implied by the report file name.
func (args *MainArgs) reportFormat() (project.ReportFormat, error) {
	if args.ReportFormat != "" {
		return project.ParseReportFormat(args.ReportFormat)
	}
	return project.ReportFormatForPath(args.ReportFile), nil
}

func setLogLevel(name string) error {
	level, err := logger.ParseLevelString(name)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	return nil
}

// Main runs netdim with the process arguments until the console exits, a batch run ends or a
// signal arrives. The outcome is available from ctx.ExitError().
func Main(ctx *progctx.ProgCtx, cliOptions *cli.CliOptions) {
	args, err := parseArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			err = nil
		}
		ctx.Cancel(err)
		return
	}
	if err = setLogLevel(args.LogLevel); err != nil {
		ctx.Cancel(err)
		return
	}
	if args.LogFile != "" {
		logger.SetOutput([]string{"stderr", args.LogFile})
	}

	handleSignals(ctx)

	rt, err := createRunner(ctx, args)
	if err != nil {
		ctx.Cancel(err)
		ctx.Wait()
		return
	}

	if args.Batch {
		err = runBatch(rt, args, os.Stdin, os.Stdout)
		ctx.Cancel(errors.Wrapf(err, "batch exit"))
		ctx.Wait()
		return
	}

	if cliOptions == nil {
		cliOptions = cli.DefaultCliOptions()
	}
	if cliOptions.HistoryFile == "" {
		cliOptions.HistoryFile = args.HistoryFile
	}
	// run console in the main goroutine
	ctx.Defer(func() {
		_ = os.Stdin.Close()
	})
	console := cli.NewCliInstance()
	logger.SetStdoutCallback(console)
	err = console.Run(rt, cliOptions)
	logger.SetStdoutCallback(nil)
	if err == nil {
		err = saveReport(rt, args)
	}
	ctx.Cancel(errors.Wrapf(err, "console exit"))

	logger.Debugf("waiting for netdim to stop gracefully ...")
	ctx.Wait()
}

func createRunner(ctx *progctx.ProgCtx, args *MainArgs) (*cli.CmdRunner, error) {
	cfg := dimensioning.DefaultConfig()
	cfg.CacheSize = args.CacheSize
	cfg.UmtsFallbackRadiusKm = args.FallbackKm
	engine, err := dimensioning.NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	rt := cli.NewCmdRunner(ctx, engine)
	rt.SetOutputFormat(cli.OutputFormat(args.OutputFormat))
	if args.ProjectFile != "" {
		f, err := project.Load(args.ProjectFile)
		if err != nil {
			return nil, err
		}
		logger.Infof("loaded project %s with %d scenarios", args.ProjectFile, len(f.Scenarios))
		rt.SetProject(f)
	}
	return rt, nil
}

// runBatch runs the loaded project and writes its report, or executes the commands on stdin when
// no project was given.
func runBatch(rt *cli.CmdRunner, args *MainArgs, stdin io.Reader, stdout io.Writer) error {
	if rt.Project() == nil {
		if err := cli.RunScript(rt, stdin, stdout); err != nil {
			return err
		}
		return saveReport(rt, args)
	}

	report, runErr := project.Run(rt.Engine(), rt.Project())
	if report == nil {
		return runErr
	}
	format, err := args.reportFormat()
	if err != nil {
		return err
	}
	if args.ReportFile != "" {
		err = report.Save(args.ReportFile, format)
	} else {
		err = report.Write(stdout, format)
	}
	if err != nil {
		return err
	}
	return runErr
}

func saveReport(rt *cli.CmdRunner, args *MainArgs) error {
	report := rt.Report()
	if args.ReportFile == "" || report == nil {
		return nil
	}
	format, err := args.reportFormat()
	if err != nil {
		return err
	}
	logger.Infof("saving report to %s", args.ReportFile)
	return report.Save(args.ReportFile, format)
}

func handleSignals(ctx *progctx.ProgCtx) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	signal.Ignore(syscall.SIGALRM)

	ctx.WaitAdd("handleSignals", 1)
	go func() {
		defer logger.Debugf("handleSignals exit.")
		defer ctx.WaitDone("handleSignals")
		defer signal.Stop(c)

		for {
			select {
			case sig := <-c:
				logger.Infof("signal received: %v", sig)
				ctx.Cancel(nil)
			case <-ctx.Done():
				return
			}
		}
	}()
}
