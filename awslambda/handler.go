// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package awslambda serves proxy solutions from AWS Lambda behind an API
// Gateway proxy integration.
package awslambda

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/sirupsen/logrus"

	"github.com/someonegg/proxymatch/proxy"
)

type Handler struct {
	seed int64
	log  logrus.FieldLogger
}

func NewHandler(seed int64, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{seed: seed, log: log}
}

// Start hands the handler to the Lambda runtime; it does not return.
func Start(h *Handler) {
	lambda.Start(h.Handle)
}

// Handle answers any GET as the readiness probe, POST /solution with a
// solution, and everything else with 400.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.log.WithFields(logrus.Fields{
		"method": event.HTTPMethod,
		"path":   event.Path,
	})
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		log = log.WithField("request_id", lc.AwsRequestID)
	}

	switch {
	case event.HTTPMethod == http.MethodGet:
		log.Info("ready")
		return respond(http.StatusNoContent, ""), nil

	case event.HTTPMethod == http.MethodPost && event.Path == "/solution":
		return h.postSolution(log, event.Body), nil

	default:
		log.Warn("no such route")
		return respond(http.StatusBadRequest, ""), nil
	}
}

func (h *Handler) postSolution(log logrus.FieldLogger, body string) events.APIGatewayProxyResponse {
	problem, err := proxy.Decode(strings.NewReader(body))
	if err != nil {
		log.WithError(err).Warn("rejected problem")
		code := http.StatusBadRequest
		if !errors.Is(err, proxy.ErrInvalidProblem) {
			code = http.StatusInternalServerError
		}
		return respondJSON(code, map[string]string{"message": err.Error()})
	}

	solver := proxy.Solver{Seed: h.seed, Log: log}
	return respondJSON(http.StatusOK, solver.Solve(problem))
}

func respondJSON(code int, v interface{}) events.APIGatewayProxyResponse {
	byts, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return respond(http.StatusInternalServerError, "")
	}
	resp := respond(code, string(byts))
	resp.Headers = map[string]string{"Content-Type": "application/json"}
	return resp
}

func respond(code int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode:      code,
		Headers:         map[string]string{},
		Body:            body,
		IsBase64Encoded: false,
	}
}
