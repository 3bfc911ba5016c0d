// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/someonegg/proxymatch/config"
)

const envPrefix = "PROXYMATCH_"

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error: ", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "proxy-solver",
		Usage: "Assign present members as proxies for absent members",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				EnvVars: []string{envPrefix + "CONFIG"},
				Usage:   "specify the YAML configuration file",
			},
			&cli.Int64Flag{
				Name:    "seed",
				EnvVars: []string{envPrefix + "SEED"},
				Usage:   "specify the lottery seed (default from config, 0)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				EnvVars: []string{envPrefix + "LOG_LEVEL"},
				Usage:   "specify the log level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:    "log-format",
				EnvVars: []string{envPrefix + "LOG_FORMAT"},
				Usage:   "specify the log format (text, json)",
			},
		},
		Commands: []*cli.Command{
			solveCmd,
			serveCmd,
			lambdaCmd,
		},
	}
}

// loadConfig reads the configuration file, then lets flags and
// environment override it.
func loadConfig(ctx *cli.Context) (config.Config, *logrus.Logger, error) {
	conf, err := config.Load(ctx.String("config"))
	if err != nil {
		return conf, nil, err
	}

	if ctx.IsSet("seed") {
		conf.Seed = ctx.Int64("seed")
	}
	if ctx.IsSet("log-level") {
		conf.Log.Level = ctx.String("log-level")
	}
	if ctx.IsSet("log-format") {
		conf.Log.Format = ctx.String("log-format")
	}
	if ctx.IsSet("listen") {
		conf.Listen = ctx.String("listen")
	}
	if err := conf.Validate(); err != nil {
		return conf, nil, err
	}

	log := logrus.New()
	log.SetOutput(ctx.App.ErrWriter)
	if err := conf.Log.Apply(log); err != nil {
		return conf, nil, errors.Wrap(err, "configure logging")
	}
	return conf, log, nil
}
