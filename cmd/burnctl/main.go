// Command burnctl is the process-level front end: urfave/cli/v2 parses
// -dev/-abort_on/-return_with/-pkt_output/a batch script path, then hands
// the remaining dialog-mode command language to the dispatch package's
// tokenizer and runner (§4.9, §6.1).
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	burn "github.com/burnshell/burn"
	"github.com/burnshell/burn/dispatch"
)

func main() {
	app := &cli.App{
		Name:  "burnctl",
		Usage: "optical-media burn driver and image-manipulation dialog",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dev", Usage: "drive address; accepted, but no drive is acquired from it"},
			&cli.StringFlag{Name: "abort_on", Value: "FAILURE", Usage: "severity at or above which the run aborts"},
			&cli.StringFlag{Name: "return_with", Usage: "severity:exit_code pairs, comma separated"},
			&cli.BoolFlag{Name: "pkt_output", Usage: "wrap result/info/mark lines in packet framing"},
			&cli.StringFlag{Name: "script", Usage: "path to a batch command script; '-' reads stdin"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("burnctl: %s", err)
	}
}

func run(c *cli.Context) error {
	abortOn, ok := burn.ParseSeverity(c.String("abort_on"))
	if !ok {
		return fmt.Errorf("unrecognized -abort_on severity %q", c.String("abort_on"))
	}

	tracker := burn.NewProblemTracker()
	exitTable := dispatch.DefaultExitCodeTable()
	if rw := c.String("return_with"); rw != "" {
		for _, pair := range strings.Split(rw, ",") {
			name, codeText, found := strings.Cut(pair, ":")
			sev, ok := burn.ParseSeverity(name)
			code, err := strconv.Atoi(codeText)
			if !found || !ok || err != nil {
				return fmt.Errorf("malformed -return_with pair %q", pair)
			}
			exitTable[sev] = code
		}
	}

	scriptPath := c.String("script")
	var in *os.File
	switch scriptPath {
	case "", "-":
		in = os.Stdin
	default:
		f, err := os.Open(scriptPath)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	resultCh := &dispatch.Channel{Kind: dispatch.ChannelResult, Out: os.Stdout, PacketOutput: c.Bool("pkt_output")}
	infoCh := &dispatch.Channel{Kind: dispatch.ChannelInfo, Out: os.Stderr, PacketOutput: c.Bool("pkt_output")}

	runner := &dispatch.Runner{
		Handlers: registerHandlers(resultCh, infoCh),
		Tracker:  tracker,
		AbortOn:  abortOn,
	}

	scanner := bufio.NewScanner(in)
	var pending string
	for scanner.Scan() {
		line := pending + scanner.Text()
		tokens, continuation, err := dispatch.Tokenize(line, dispatch.BackslashInQuotes)
		if err != nil {
			infoCh.WriteLine("SORRY : tokenize : " + err.Error())
			pending = ""
			continue
		}
		if continuation {
			pending = line
			continue
		}
		pending = ""

		commands, err := dispatch.Split(tokens, dispatch.DefaultListDelimiter)
		if err != nil {
			infoCh.WriteLine("SORRY : split : " + err.Error())
			continue
		}
		commands = dispatch.MergeDriveSelection(commands)

		result := runner.Run(commands)
		if result.Aborted {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	os.Exit(tracker.ReturnCode(exitTable))
	return nil
}

// registerHandlers wires a minimal handler set: "version" prints a version
// line and "end" ends the program. No other command in the table has a
// handler, so Runner.Run skips it with a NOTE. -as emulation handlers are
// intentionally left unregistered (spec.md Non-goals).
func registerHandlers(result, info *dispatch.Channel) map[string]dispatch.Handler {
	return map[string]dispatch.Handler{
		"version": func(cmd dispatch.Command, tracker *burn.ProblemTracker) dispatch.Outcome {
			result.WriteLine("burnctl 0")
			return dispatch.OutcomeOK
		},
		"end": func(cmd dispatch.Command, tracker *burn.ProblemTracker) dispatch.Outcome {
			return dispatch.OutcomeEndProgram
		},
	}
}
