// Command cellsheet runs a script of SET/CLEAR/PRINT lines against a
// single cellsheet.Sheet and writes the results to stdout.
//
// Script grammar, one instruction per line:
//
//	SET <pos> <text>
//	CLEAR <pos>
//	PRINT VALUES
//	PRINT TEXTS
//
// Blank lines and lines starting with # are ignored.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arborsoft/cellsheet"
	"github.com/arborsoft/cellsheet/position"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cellsheet", flag.ContinueOnError)
	fs.SetOutput(stderr)
	scriptPath := fs.String("script", "", "path to a script file; defaults to stdin")
	logLevel := fs.String("log-level", "info", "logrus level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := logrus.New()
	log.SetOutput(stderr)
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "cellsheet: invalid -log-level %q: %v\n", *logLevel, err)
		return 2
	}
	log.SetLevel(level)

	runID := uuid.New()
	log.WithField("run_id", runID).Debug("cellsheet: starting run")

	var src io.Reader = stdin
	if *scriptPath != "" {
		f, err := os.Open(*scriptPath)
		if err != nil {
			log.WithField("run_id", runID).WithError(err).Error("cellsheet: could not open script")
			return 1
		}
		defer f.Close()
		src = f
	}

	sheet := cellsheet.NewSheet(log)
	if err := execScript(sheet, src, stdout, runID.String()); err != nil {
		log.WithField("run_id", runID).WithError(err).Error("cellsheet: script failed")
		fmt.Fprintf(stderr, "cellsheet: %v\n", err)
		return 1
	}
	return 0
}

// execScript applies every instruction in src to sheet in order, writing
// PRINT output to out. It stops at the first failing line; runID is only
// for the error's log context, via the caller.
func execScript(sheet *cellsheet.Sheet, src io.Reader, out io.Writer, runID string) error {
	scanner := bufio.NewScanner(src)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := execLine(sheet, line, out); err != nil {
			return errors.Wrapf(err, "line %d: %q", lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading script")
	}
	return nil
}

func execLine(sheet *cellsheet.Sheet, line string, out io.Writer) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch strings.ToUpper(fields[0]) {
	case "SET":
		if len(fields) < 3 {
			return errors.New("SET requires a position and text")
		}
		pos, err := position.Parse(fields[1])
		if err != nil {
			return err
		}
		// Re-split on the command and position so embedded whitespace in
		// text survives; fields has already collapsed it.
		rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
		rest = strings.TrimSpace(strings.TrimPrefix(rest, fields[1]))
		return sheet.SetCell(pos, rest)

	case "CLEAR":
		if len(fields) != 2 {
			return errors.New("CLEAR requires exactly one position")
		}
		pos, err := position.Parse(fields[1])
		if err != nil {
			return err
		}
		return sheet.ClearCell(pos)

	case "PRINT":
		if len(fields) != 2 {
			return errors.New("PRINT requires VALUES or TEXTS")
		}
		switch strings.ToUpper(fields[1]) {
		case "VALUES":
			return sheet.PrintValues(out)
		case "TEXTS":
			return sheet.PrintTexts(out)
		default:
			return errors.Errorf("unknown PRINT target %q", fields[1])
		}

	default:
		return errors.Errorf("unknown instruction %q", fields[0])
	}
}
