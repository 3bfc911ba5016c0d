// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v2"
)

// ErrInvalidProblem is the inner error of every payload Decode rejects.
var ErrInvalidProblem = errors.New("invalid problem")

const problemSchemaJSON = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["capacity", "members", "members_present"],
	"properties": {
		"capacity": {"type": "integer", "minimum": 0},
		"members": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "preferences"],
				"properties": {
					"id": {"type": "string"},
					"preferences": {"type": "array", "items": {"type": "string"}}
				}
			}
		},
		"members_present": {"type": "array", "items": {"type": "string"}}
	}
}`

var problemSchema = mustCompileSchema("problem.json", problemSchemaJSON)

func mustCompileSchema(url, schema string) *jsonschema.Schema {
	compiled, err := jsonschema.CompileString(url, schema)
	if err != nil {
		panic("uncompilable schema: " + url)
	}
	return compiled
}

// Decode reads a problem payload. Payloads that are not JSON or do not
// match the problem schema are rejected with an error wrapping
// ErrInvalidProblem, so Solve only ever sees well-typed problems.
func Decode(r io.Reader) (*Problem, error) {
	byts, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read problem")
	}

	if err := problemSchema.Validate(bytes.NewReader(byts)); err != nil {
		return nil, errors.Wrap(ErrInvalidProblem, renderSchemaError(err).Error())
	}

	var p Problem
	if err := json.Unmarshal(byts, &p); err != nil {
		return nil, errors.Wrap(ErrInvalidProblem, err.Error())
	}
	return &p, nil
}

// renderSchemaError flattens a nested schema error into its leaves.
func renderSchemaError(err error) error {
	vErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}

	msgs := leafMessages(vErr)
	sort.Strings(msgs)

	var result *multierror.Error
	for _, msg := range msgs {
		result = multierror.Append(result, errors.New(msg))
	}
	result.ErrorFormat = func(errs []error) string {
		parts := make([]string, len(errs))
		for i, e := range errs {
			parts[i] = e.Error()
		}
		return strings.Join(parts, "; ")
	}
	return result
}

func leafMessages(vErr *jsonschema.ValidationError) []string {
	var msgs []string
	for _, cause := range vErr.Causes {
		msgs = append(msgs, leafMessages(cause)...)
	}
	if len(msgs) > 0 {
		return msgs
	}
	return []string{fmt.Sprintf("%s: %s", renderPointer(vErr.InstancePtr), vErr.Message)}
}

// renderPointer renders "#/members/0/id" as "members[0].id".
func renderPointer(ptr string) string {
	out := ""
	for _, s := range strings.Split(strings.TrimPrefix(ptr, "#"), "/") {
		if s == "" {
			continue
		}
		if _, err := strconv.Atoi(s); err == nil {
			out += "[" + s + "]"
			continue
		}
		if out != "" {
			out += "."
		}
		out += s
	}
	if out == "" {
		return "problem"
	}
	return out
}
