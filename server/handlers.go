// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/someonegg/proxymatch/proxy"
)

// SolutionResponse is a solution, plus its quorum report when asked for.
type SolutionResponse struct {
	*proxy.Solution
	Quorum *proxy.QuorumReport `json:"quorum,omitempty"`
}

// getHealthReady wakes up the API, for example if it sleeps on its host.
// It never touches the solver.
func (s *Server) getHealthReady(c echo.Context) error {
	s.requestLog(c).Debug("ready")
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) postSolution(c echo.Context) error {
	withQuorum := false
	if q := c.QueryParam("quorum"); q != "" {
		var err error
		if withQuorum, err = strconv.ParseBool(q); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("quorum: %q is not a boolean", q))
		}
	}

	problem, err := proxy.Decode(c.Request().Body)
	switch {
	case errors.Is(err, proxy.ErrInvalidProblem):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case err != nil:
		return err
	}

	solver := proxy.Solver{Seed: s.conf.Seed, Log: s.requestLog(c)}
	solution := solver.Solve(problem)
	s.metrics.observe(solution.Metrics())

	resp := SolutionResponse{Solution: solution}
	if withQuorum {
		report := proxy.Quorum(solution.Metrics())
		resp.Quorum = &report
	}
	return c.JSON(http.StatusOK, resp)
}

// jsonErrorHandler renders errors as {"message": ...}, defaulting to a 500
// unless the handler returned an *echo.HTTPError.
func (s *Server) jsonErrorHandler(err error, c echo.Context) {
	var (
		code             = http.StatusInternalServerError
		msg  interface{} = err.Error()
	)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = he.Message
	}
	if code >= http.StatusInternalServerError {
		s.requestLog(c).WithError(err).Error("request failed")
	}
	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, map[string]interface{}{"message": fmt.Sprint(msg)})
	}
	if err != nil {
		s.requestLog(c).WithError(err).Error("failed to write error response")
	}
}
