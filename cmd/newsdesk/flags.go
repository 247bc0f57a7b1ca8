// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is how dates are given on the command line, in local time.
const TimeLayout = "2006-01-02 15:04"

// stringList collects a repeatable flag.
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// command is a parsed sub-command flag set.
type command struct {
	fs  *flag.FlagSet
	yes *bool
}

// newCommand returns a flag set that reports errors instead of exiting.
func newCommand(name string, out io.Writer, confirms bool) *command {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	c := &command{fs: fs}
	if confirms {
		c.yes = fs.Bool("yes", false, "Do not ask for confirmation")
	}
	return c
}

// parse parses args. A leading bare argument is taken as the record ID so
// both "update 3 -name x" and "update -name x 3" work.
func (c *command) parse(args []string) error {
	var lead []string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		lead, args = args[:1], args[1:]
	}
	if err := c.fs.Parse(args); err != nil {
		return err
	}
	if len(lead) > 0 {
		return c.fs.Parse(append(c.fs.Args(), lead...))
	}
	return nil
}

// visited returns the names of the flags given explicitly.
func (c *command) visited() map[string]bool {
	set := map[string]bool{}
	c.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// assumeYes reports whether -yes was given.
func (c *command) assumeYes() bool {
	return c.yes != nil && *c.yes
}

// id returns the positional record ID.
func (c *command) id() (int64, error) {
	if c.fs.NArg() == 0 {
		return 0, fmt.Errorf("%s: missing ID", c.fs.Name())
	}
	if c.fs.NArg() > 1 {
		return 0, fmt.Errorf("%s: unexpected arguments %q", c.fs.Name(), c.fs.Args()[1:])
	}
	id, err := strconv.ParseInt(c.fs.Arg(0), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s: invalid ID %q", c.fs.Name(), c.fs.Arg(0))
	}
	return id, nil
}

// noArgs rejects positional arguments.
func (c *command) noArgs() error {
	if c.fs.NArg() > 0 {
		return fmt.Errorf("%s: unexpected arguments %q", c.fs.Name(), c.fs.Args())
	}
	return nil
}

// parseLocalTime parses s in TimeLayout, or RFC 3339.
func parseLocalTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(TimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q (want %q)", s, TimeLayout)
}

// parseID parses a flag value naming a record. Empty and "all" are zero.
func parseID(name, s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "all" {
		return 0, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("-%s: invalid ID %q", name, s)
	}
	return id, nil
}

// splitTags splits a comma separated tag list.
func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
