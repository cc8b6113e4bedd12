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
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/term"

	"github.com/openthread/netdim/logger"
)

// Help renders the command reference embedded from README.md.
type Help struct {
	termWidth uint
	entries   map[string]*helpEntry
	sections  []helpSection
}

// helpEntry is one "### <command>" block of the reference.
type helpEntry struct {
	name    string
	summary string // first sentence of the description
	lines   []string
}

type helpSection struct {
	title   string
	entries []*helpEntry
}

// helpAliases maps alternative command keywords onto their reference entry.
var helpAliases = map[string]string{
	"hertzian": "hz",
	"opt":      "optical",
	"quit":     "exit",
}

var (
	headerPattern     = regexp.MustCompile(`^(#{2,3}) +(.+)$`)
	linkTargetPattern = regexp.MustCompile(`\(#[a-z-]+\)`)
)

//go:embed README.md
var cliHelpFile string

func newHelp() Help {
	h := Help{
		termWidth: 80,
		entries:   make(map[string]*helpEntry),
	}
	h.parse(cliHelpFile)
	h.update()
	return h
}

// update takes the width of the user's terminal into account.
func (help *Help) update() {
	fdTerm := int(os.Stdout.Fd()) // Windows platform requires cast to int.
	if term.IsTerminal(fdTerm) {
		width, _, err := term.GetSize(fdTerm)
		logger.PanicIfError(err, "Could not get terminal size.")
		help.termWidth = uint(width)
	}
}

func (help *Help) outputGeneralHelp() string {
	var sb strings.Builder
	for _, sec := range help.sections {
		sb.WriteString(sec.title + ":\n")
		entries := append([]*helpEntry(nil), sec.entries...)
		sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
		for _, e := range entries {
			_, _ = fmt.Fprintf(&sb, "  %-13s %s\n", e.name, e.summary)
		}
	}
	sb.WriteString(wordwrap.WrapString("\nFor detailed help per command, use: 'help <command>'\n", help.termWidth))
	return sb.String()
}

func (help *Help) outputCommandHelp(command string) string {
	help.update()
	e := help.lookup(command)
	if e == nil {
		msg := fmt.Sprintf("%s\n  (Non-existent command.)\n", command)
		if similar := help.similar(command); len(similar) > 0 {
			msg += fmt.Sprintf("  Did you mean: %s\n", strings.Join(similar, ", "))
		}
		return msg
	}

	var sb strings.Builder
	sb.WriteString(e.name + "\n")
	for _, line := range e.lines {
		for _, wrapped := range strings.Split(wordwrap.WrapString(line, help.termWidth-2), "\n") {
			sb.WriteString("  " + wrapped + "\n")
		}
	}
	return sb.String()
}

func (help *Help) lookup(command string) *helpEntry {
	command = strings.ToLower(command)
	if alias, ok := helpAliases[command]; ok {
		command = alias
	}
	return help.entries[command]
}

// similar returns the commands sharing a prefix with command.
func (help *Help) similar(command string) []string {
	var names []string
	for name := range help.entries {
		if len(command) > 0 && (strings.HasPrefix(name, command) || strings.HasPrefix(command, name)) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// parse reads the markdown reference: "##" headers are sections, "###" headers are commands,
// shell blocks are the syntax and bash blocks the examples.
func (help *Help) parse(md string) {
	var cur *helpEntry
	inBlock := false
	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimSpace(line)
		if m := headerPattern.FindStringSubmatch(line); m != nil && !inBlock {
			if m[1] == "##" {
				help.sections = append(help.sections, helpSection{title: m[2]})
				cur = nil
				continue
			}
			if len(help.sections) == 0 {
				help.sections = append(help.sections, helpSection{title: "Commands"})
			}
			cur = &helpEntry{name: m[2]}
			help.entries[cur.name] = cur
			sec := &help.sections[len(help.sections)-1]
			sec.entries = append(sec.entries, cur)
			continue
		}
		if cur == nil || line == "" {
			continue
		}

		switch {
		case line == "```shell":
			cur.lines = append(cur.lines, "", "Definition:")
			inBlock = true
		case line == "```bash":
			cur.lines = append(cur.lines, "", "Example:")
			inBlock = true
		case line == "```":
			inBlock = false
		case inBlock:
			cur.lines = append(cur.lines, "  "+line)
		default:
			line = markdownUnquote(line)
			cur.lines = append(cur.lines, line)
			if cur.summary == "" {
				cur.summary = firstSentence(line)
			}
		}
	}
}

func firstSentence(s string) string {
	if idx := strings.Index(s, ". "); idx > 0 {
		return s[:idx+1]
	}
	return s
}

func markdownUnquote(md string) string {
	md = strings.ReplaceAll(md, "\\", "")
	md = strings.ReplaceAll(md, "`", "'")
	return linkTargetPattern.ReplaceAllString(md, "")
}
