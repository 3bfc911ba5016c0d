// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/someonegg/proxymatch/proxy"
	"github.com/someonegg/proxymatch/server"
)

var solveCmd = &cli.Command{
	Name:    "solve",
	Usage:   "Solve a problem file",
	Aliases: []string{"s"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "problem",
			Aliases:  []string{"p"},
			Required: true,
			Usage:    "specify the input problem.json (- for stdin)",
		},
		&cli.StringFlag{
			Name:    "solution",
			Aliases: []string{"o"},
			Value:   "-",
			Usage:   "specify the output solution.json (- for stdout)",
		},
		&cli.BoolFlag{
			Name:  "quorum",
			Usage: "add the quorum report to the solution",
		},
	},
	Action: func(ctx *cli.Context) error {
		conf, log, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		return doSolve(ctx, log, conf.Seed,
			ctx.String("problem"), ctx.String("solution"), ctx.Bool("quorum"))
	},
}

func doSolve(ctx *cli.Context, log *logrus.Logger, seed int64,
	problemFile, solutionFile string, quorum bool) error {

	problem, err := loadProblem(ctx.App.Reader, problemFile)
	if err != nil {
		return errors.Wrap(err, "load problem file failed")
	}

	solver := proxy.Solver{Seed: seed, Log: log}
	solution := solver.Solve(problem)

	resp := server.SolutionResponse{Solution: solution}
	if quorum {
		report := proxy.Quorum(solution.Metrics())
		resp.Quorum = &report
	}

	if err := writeSolution(ctx.App.Writer, solutionFile, resp); err != nil {
		return errors.Wrap(err, "write solution file failed")
	}
	return nil
}

func loadProblem(stdin io.Reader, file string) (*proxy.Problem, error) {
	if file == "-" {
		return proxy.Decode(stdin)
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return proxy.Decode(f)
}

func writeSolution(stdout io.Writer, file string, v interface{}) error {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "   ")
	if err := encoder.Encode(v); err != nil {
		return err
	}

	if file == "-" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	return os.WriteFile(file, buf.Bytes(), 0644)
}
