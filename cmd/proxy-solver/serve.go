// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"

	"github.com/someonegg/proxymatch/awslambda"
	"github.com/someonegg/proxymatch/server"
)

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "Serve solutions over HTTP",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "listen",
			Aliases: []string{"l"},
			EnvVars: []string{envPrefix + "LISTEN"},
			Usage:   "specify the listen address (default from config, :8000)",
		},
	},
	Action: func(ctx *cli.Context) error {
		conf, log, err := loadConfig(ctx)
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		s, err := server.New(conf, log, reg)
		if err != nil {
			return err
		}

		runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return s.Run(runCtx)
	},
}

var lambdaCmd = &cli.Command{
	Name:  "lambda",
	Usage: "Serve solutions from AWS Lambda",
	Action: func(ctx *cli.Context) error {
		conf, log, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		awslambda.Start(awslambda.NewHandler(conf.Seed, log))
		return nil
	},
}
