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
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"

	"github.com/openthread/netdim/logger"
)

type CliHandler interface {
	HandleCommand(cmd string, output io.Writer) error
	GetPrompt() string
}

type CliOptions struct {
	EchoInput   bool
	HistoryFile string
	Stdin       *os.File
	Stdout      *os.File
}

func DefaultCliOptions() *CliOptions {
	return &CliOptions{
		EchoInput:   false,
		HistoryFile: "",
		Stdin:       nil,
		Stdout:      nil,
	}
}

// CliInstance is the interactive console.
type CliInstance struct {
	Started          chan struct{}
	Options          *CliOptions
	readlineInstance *readline.Instance
	waitCliClosed    chan struct{}
}

func NewCliInstance() *CliInstance {
	return &CliInstance{
		Started:       make(chan struct{}),
		waitCliClosed: make(chan struct{}),
	}
}

func (cli *CliInstance) RestorePrompt() {
	if cli.readlineInstance != nil {
		cli.readlineInstance.Refresh()
	}
}

// OnStdout redraws the prompt after log output was written to the terminal.
func (cli *CliInstance) OnStdout() {
	cli.RestorePrompt()
}

func getCliOptions(options *CliOptions) *CliOptions {
	if options == nil {
		options = DefaultCliOptions()
	}
	if options.Stdin == nil {
		options.Stdin = os.Stdin
	}
	if options.Stdout == nil {
		options.Stdout = os.Stdout
	}
	return options
}

// Stop makes a running console return.
func (cli *CliInstance) Stop() {
	<-cli.Started
	// readlineInstance.Close() can block here, Run() closes it.
	// ETX (Ctrl-C) unblocks readline's internal select.
	_, _ = cli.Options.Stdin.WriteString("\003\n")
	_ = cli.Options.Stdin.Close()
	logger.Tracef("Waiting for CLI to stop ...")
	<-cli.waitCliClosed
	logger.Tracef("CLI wait-for-stop done.")
}

// completer offers the command keywords on <Tab>.
var completer = readline.NewPrefixCompleter(
	readline.PcItem("gsm", pcItems("radius", "bts", "traffic", "erlang", "plan")...),
	readline.PcItem("umts", pcItems("uplink", "downlink", "coverage", "plan")...),
	readline.PcItem("hz", pcItems("fsl", "margin", "avail", "diffraction", "maxdist")...),
	readline.PcItem("optical", pcItems("budget", "atten", "losses", "range", "dispersion", "penalty", "osnr")...),
	readline.PcItem("load"),
	readline.PcItem("run"),
	readline.PcItem("save"),
	readline.PcItem("stats"),
	readline.PcItem("format", pcItems("table", "yaml")...),
	readline.PcItem("log", pcItems("trace", "debug", "info", "warn", "error", "off")...),
	readline.PcItem("help", pcItems("gsm", "umts", "hz", "optical", "load", "run", "save", "stats", "format", "log", "exit")...),
	readline.PcItem("exit"),
)

func pcItems(names ...string) []readline.PrefixCompleterInterface {
	items := make([]readline.PrefixCompleterInterface, 0, len(names))
	for _, name := range names {
		items = append(items, readline.PcItem(name))
	}
	return items
}

// keepTermState returns a function restoring the terminal state of f, if f is a terminal.
func keepTermState(f *os.File) (func(), error) {
	fd := int(f.Fd())
	if !readline.IsTerminal(fd) {
		return func() {}, nil
	}
	state, err := readline.GetState(fd)
	if err != nil {
		return nil, err
	}
	return func() {
		_ = readline.Restore(fd, state)
	}, nil
}

func newReadline(handler CliHandler, options *CliOptions) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:            handler.GetPrompt(),
		HistoryFile:       options.HistoryFile,
		AutoComplete:      completer,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		Stdin:             options.Stdin,
		Stdout:            options.Stdout,
		HistorySearchFold: true,
		FuncFilterInputRune: func(r rune) (rune, bool) {
			return r, r != readline.CharCtrlZ
		},
	})
}

// Run reads commands until EOF, Ctrl-C on an empty line, or the handler ends the program.
func (cli *CliInstance) Run(handler CliHandler, options *CliOptions) error {
	defer logger.Debugf("CLI exit.")
	defer close(cli.waitCliClosed)

	options = getCliOptions(options)
	cli.Options = options

	for _, f := range []*os.File{options.Stdin, options.Stdout} {
		restore, err := keepTermState(f)
		if err != nil {
			close(cli.Started)
			return err
		}
		defer restore()
	}

	l, err := newReadline(handler, options)
	if err != nil {
		close(cli.Started)
		return err
	}
	defer func() {
		_ = l.Close()
	}()
	cli.readlineInstance = l
	close(cli.Started)

	for {
		l.SetPrompt(handler.GetPrompt())
		line, err := l.Readline()

		switch {
		case len(line) > 0 && line[0] == readline.CharInterrupt:
			return nil
		case errors.Is(err, readline.ErrInterrupt):
			if len(line) == 0 {
				return nil
			}
			continue // Ctrl-C in midline edit only cancels the present cmd line.
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		if options.EchoInput {
			if _, err := options.Stdout.WriteString(line + "\n"); err != nil {
				return err
			}
		}

		cmd := strings.TrimSpace(line)
		if len(cmd) == 0 || strings.HasPrefix(cmd, "#") {
			continue
		}

		done, err := handleLine(handler, cmd, l.Stdout())
		_ = options.Stdout.Sync()
		if done || err != nil {
			return err
		}
	}
}

// RunScript executes the commands read from r, one per line, without a console. Empty lines and
// lines starting with '#' are skipped.
func RunScript(handler CliHandler, r io.Reader, output io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		cmd := strings.TrimSpace(scanner.Text())
		if len(cmd) == 0 || strings.HasPrefix(cmd, "#") {
			continue
		}
		if done, err := handleLine(handler, cmd, output); done || err != nil {
			return err
		}
	}
	return errors.Wrapf(scanner.Err(), "read commands")
}

// handleLine runs one command and reports whether the program has ended.
func handleLine(handler CliHandler, cmd string, output io.Writer) (bool, error) {
	err := handler.HandleCommand(cmd, output)
	if errors.Is(err, context.Canceled) {
		return true, nil
	}
	return err != nil, err
}
