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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openthread/netdim/dimensioning"
	"github.com/openthread/netdim/logger"
	"github.com/openthread/netdim/progctx"
)

func TestParseBytes(t *testing.T) {
	var cmd Command
	assert.NotNil(t, parseBytes([]byte("wrongcmd"), &cmd))

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("gsm radius 900 43 -102"), &cmd))
	require.NotNil(t, cmd.Gsm)
	require.NotNil(t, cmd.Gsm.Radius)
	assert.Equal(t, 900.0, cmd.Gsm.Radius.Frequency.Value())
	assert.Equal(t, -102.0, cmd.Gsm.Radius.MobileThreshold.Value())
	assert.Equal(t, "", cmd.Gsm.Radius.Model)

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("gsm radius 1800 45 -105 COST231"), &cmd))
	assert.Equal(t, "COST231", cmd.Gsm.Radius.Model)

	assert.Nil(t, parseBytes([]byte("gsm bts 100 2.5"), &Command{}))
	assert.Nil(t, parseBytes([]byte("gsm traffic 30 0.8"), &Command{}))
	assert.Nil(t, parseBytes([]byte("gsm erlang 10 0.02"), &Command{}))
	assert.Nil(t, parseBytes([]byte("gsm plan 124 7"), &Command{}))
	assert.NotNil(t, parseBytes([]byte("gsm radius 900"), &Command{}))
	assert.NotNil(t, parseBytes([]byte("gsm plan 124 7.5"), &Command{}))

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("umts uplink 5 voice 12.2 0.5 data 64 1"), &cmd))
	require.NotNil(t, cmd.Umts.Uplink)
	assert.Equal(t, 2, len(cmd.Umts.Uplink.Services))
	assert.Equal(t, "data", cmd.Umts.Uplink.Services[1].Type)
	assert.Nil(t, cmd.Umts.Uplink.LoadFactor)

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("umts downlink 5 load 0.6 video 384 1"), &cmd))
	require.NotNil(t, cmd.Umts.Downlink)
	assert.Equal(t, 0.6, cmd.Umts.Downlink.LoadFactor.Value())
	assert.NotNil(t, parseBytes([]byte("umts uplink 5"), &Command{}))

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("umts coverage 43 -110 10 metro hb 25"), &cmd))
	require.NotNil(t, cmd.Umts.Coverage)
	assert.NotNil(t, cmd.Umts.Coverage.Metropolitan)
	assert.Equal(t, 25.0, cmd.Umts.Coverage.BaseHeight.Value())
	assert.Nil(t, cmd.Umts.Coverage.Frequency)
	assert.Nil(t, parseBytes([]byte("umts plan 15"), &Command{}))
	assert.Nil(t, parseBytes([]byte("umts plan 20 10"), &Command{}))

	assert.Nil(t, parseBytes([]byte("hz fsl 2 10"), &Command{}))
	assert.Nil(t, parseBytes([]byte("hertzian margin 96 -70 139.56"), &Command{}))
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("hz avail 40 18 10 K"), &cmd))
	assert.Equal(t, "K", cmd.Hz.Avail.RainZone)
	assert.Nil(t, parseBytes([]byte("hz diffraction 10 -20 20"), &Command{}))
	assert.Nil(t, parseBytes([]byte("hz maxdist 200 -60 18 2"), &Command{}))

	assert.Nil(t, parseBytes([]byte("optical budget 0 -28"), &Command{}))
	assert.Nil(t, parseBytes([]byte("opt atten multi 850"), &Command{}))
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("optical losses mono 20 1310 4 6 sl 0.2"), &cmd))
	assert.Equal(t, 0.2, cmd.Optical.Losses.SpliceLoss.Value())
	assert.Nil(t, cmd.Optical.Losses.ConnectorLoss)
	assert.Nil(t, parseBytes([]byte("optical range 28 0.35 2.6 3"), &Command{}))
	assert.Nil(t, parseBytes([]byte("optical dispersion 1550 80 0.1"), &Command{}))
	assert.Nil(t, parseBytes([]byte("optical penalty 10 136"), &Command{}))
	assert.Nil(t, parseBytes([]byte("optical osnr 0 -20 5 4"), &Command{}))
	assert.NotNil(t, parseBytes([]byte("optical atten glass 1310"), &Command{}))

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte(`load "metro.yaml"`), &cmd))
	assert.Equal(t, "metro.yaml", unquote(cmd.Load.Path))
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte(`run ring "downtown-gsm"`), &cmd))
	assert.Equal(t, 2, len(cmd.Run.Scenarios))
	assert.Nil(t, parseBytes([]byte("run"), &Command{}))
	assert.Nil(t, parseBytes([]byte(`save "report.json"`), &Command{}))
	assert.Nil(t, parseBytes([]byte("stats"), &Command{}))
	assert.Nil(t, parseBytes([]byte("format yaml"), &Command{}))
	assert.Nil(t, parseBytes([]byte("log debug"), &Command{}))
	assert.Nil(t, parseBytes([]byte("log"), &Command{}))
	assert.Nil(t, parseBytes([]byte("help gsm"), &Command{}))
	assert.Nil(t, parseBytes([]byte("exit"), &Command{}))
}

func newTestRunner(t *testing.T) *CmdRunner {
	engine, err := dimensioning.NewEngine(nil)
	require.NoError(t, err)
	return NewCmdRunner(progctx.New(context.Background()), engine)
}

func runCmd(t *testing.T, rt *CmdRunner, cmdline string) string {
	var out bytes.Buffer
	assert.NoError(t, rt.HandleCommand(cmdline, &out))
	return out.String()
}

func TestCalculatorCommands(t *testing.T) {
	rt := newTestRunner(t)

	out := runCmd(t, rt, "gsm radius 900 43 -102")
	assert.Contains(t, out, "3.37")
	assert.Contains(t, out, "OKUMURA_HATA")
	assert.True(t, strings.HasSuffix(out, "Done\n"))

	out = runCmd(t, rt, "gsm radius 900 43 -102 lee")
	assert.Contains(t, out, "FREE_SPACE")

	out = runCmd(t, rt, "gsm erlang 1000 0.001")
	assert.Contains(t, out, "Error: ")
	assert.Contains(t, out, "did not converge")

	out = runCmd(t, rt, "umts uplink 5 voice 12.2 0.5")
	assert.Contains(t, out, "maxUsers")
	assert.Contains(t, out, "90")

	runCmd(t, rt, "format yaml")
	assert.Equal(t, OutputYaml, rt.format)
	out = runCmd(t, rt, "hz fsl 2 10")
	assert.Contains(t, out, "freeSpaceLoss: 118.47\n")
	out = runCmd(t, rt, "hz avail 40 18 10 K")
	assert.Contains(t, out, "availability: 99.99\n")
	upper := runCmd(t, rt, "hz avail 30 18 10 N")
	assert.Contains(t, upper, "rainRate: 95\n")
	assert.Equal(t, upper, runCmd(t, rt, "hz avail 30 18 10 n"))
	out = runCmd(t, rt, "optical losses mono 20 1310 4 6")
	assert.Contains(t, out, "total: 12.6\n")
	out = runCmd(t, rt, "optical range 10 0.25 8")
	assert.Contains(t, out, "maxRange: 0\n")
	out = runCmd(t, rt, "format")
	assert.Contains(t, out, "yaml")

	out = runCmd(t, rt, "wrongcmd")
	assert.Contains(t, out, "Error: ")
}

var testProject = `
name: metro
scenarios:
    - name: downtown-gsm
      gsm:
          subscribers: 2000
    - name: ring
      optical:
          length: 20
          wavelength: 1310
          connectors: 4
          splices: 6
`

func TestProjectCommands(t *testing.T) {
	rt := newTestRunner(t)
	dir := t.TempDir()

	out := runCmd(t, rt, "run")
	assert.Contains(t, out, "no project loaded")
	out = runCmd(t, rt, `save "x.yaml"`)
	assert.Contains(t, out, "Error: ")

	path := filepath.Join(dir, "metro.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testProject), 0644))
	out = runCmd(t, rt, fmt.Sprintf("load %q", path))
	assert.Contains(t, out, "loaded 2 scenarios")

	out = runCmd(t, rt, "run")
	assert.Contains(t, out, "downtown-gsm")
	assert.Contains(t, out, "ring")
	require.NotNil(t, rt.Report())
	assert.Equal(t, 2, len(rt.Report().Results))

	out = runCmd(t, rt, "run ring")
	assert.NotContains(t, out, "downtown-gsm")
	assert.Equal(t, 1, len(rt.Report().Results))

	out = runCmd(t, rt, "run nope")
	assert.Contains(t, out, "not found")

	reportPath := filepath.Join(dir, "report.json")
	out = runCmd(t, rt, fmt.Sprintf("save %q", reportPath))
	assert.Contains(t, out, "Done")
	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var doc map[string]interface{}
	assert.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "metro", doc["project"])

	out = runCmd(t, rt, "stats")
	assert.Contains(t, out, "netdim_dimensioning_requests_total")
	assert.Contains(t, out, "technology=optical")
}

func TestLogLevelCommand(t *testing.T) {
	rt := newTestRunner(t)
	level := logger.GetLevel()
	defer logger.SetLevel(level)

	runCmd(t, rt, "log debug")
	assert.Equal(t, logger.DebugLevel, logger.GetLevel())
	out := runCmd(t, rt, "log")
	assert.Contains(t, out, "debug")
}

func TestHelpCommand(t *testing.T) {
	rt := newTestRunner(t)
	out := runCmd(t, rt, "help")
	assert.Contains(t, out, "Calculators:")
	assert.Contains(t, out, "Projects:")
	assert.Contains(t, out, "gsm")

	out = runCmd(t, rt, "help optical")
	assert.Contains(t, out, "optical budget")

	out = runCmd(t, rt, "help nonsense")
	assert.Contains(t, out, "Non-existent command")

	out = runCmd(t, rt, "help hertzian")
	assert.Contains(t, out, "hz fsl")

	out = runCmd(t, rt, "help gs")
	assert.Contains(t, out, "Did you mean: gsm")
}

func TestExitCommand(t *testing.T) {
	rt := newTestRunner(t)
	var out bytes.Buffer
	err := rt.HandleCommand("exit", &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotNil(t, rt.ctx.Err())

	// commands are ignored after exit
	out.Reset()
	assert.Error(t, rt.HandleCommand("gsm plan 124 7", &out))
	assert.Empty(t, out.String())
}

func TestRunScript(t *testing.T) {
	rt := newTestRunner(t)
	script := "gsm plan 124 7\n# comment\n\nexit\ngsm plan 10 1\n"
	var out bytes.Buffer
	assert.NoError(t, RunScript(rt, strings.NewReader(script), &out))
	assert.Equal(t, 2, strings.Count(out.String(), "Done"))
	assert.Contains(t, out.String(), "17")
}

type mockCliHandler struct {
	expectedCmd string
	handleError error
	handleCount int
	t           *testing.T
}

func (hnd *mockCliHandler) HandleCommand(cmd string, output io.Writer) error {
	assert.Equal(hnd.t, hnd.expectedCmd, cmd)
	hnd.handleCount += 1
	return hnd.handleError
}

func (hnd *mockCliHandler) GetPrompt() string {
	return "> "
}

func TestCliStartStop(t *testing.T) {
	cli := NewCliInstance()
	handler := mockCliHandler{
		expectedCmd: "help",
		handleError: nil,
		t:           t,
	}

	opt := DefaultCliOptions()
	r, w, _ := os.Pipe()
	opt.Stdin = r
	err := make(chan error, 1)
	go func() {
		err <- cli.Run(&handler, opt)
	}()
	<-cli.Started
	fmt.Fprint(w, "help\n")
	time.Sleep(time.Millisecond * 500)
	_ = w.Close()
	cli.Stop()

	assert.Nil(t, <-err)
	assert.Equal(t, 1, handler.handleCount)
}

func TestCliCommandError(t *testing.T) {
	cli := NewCliInstance()
	handler := mockCliHandler{
		expectedCmd: "xyz",
		handleError: fmt.Errorf("undefined command"),
		t:           t,
	}

	opt := DefaultCliOptions()
	r, w, _ := os.Pipe()
	opt.Stdin = r
	err := make(chan error, 1)
	go func() {
		err <- cli.Run(&handler, opt)
	}()
	<-cli.Started
	fmt.Fprint(w, "xyz\n") // a handler error ends the console

	assert.NotNil(t, <-err)
	assert.Equal(t, 1, handler.handleCount)

	cli.Stop() // calling Stop() after CLI has already exited.
}

func TestCliExitByHandler(t *testing.T) {
	cli := NewCliInstance()
	handler := mockCliHandler{
		expectedCmd: "exit",
		handleError: context.Canceled,
		t:           t,
	}

	opt := DefaultCliOptions()
	r, w, _ := os.Pipe()
	opt.Stdin = r
	err := make(chan error, 1)
	go func() {
		err <- cli.Run(&handler, opt)
	}()
	<-cli.Started
	fmt.Fprint(w, "exit\n")

	assert.Nil(t, <-err)
	assert.Equal(t, 1, handler.handleCount)
	_ = w.Close()
	cli.Stop()
}
