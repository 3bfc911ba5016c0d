// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package proxy uses proxymatch to assign proxies to absent members.
package proxy

import (
	"github.com/sirupsen/logrus"
)

// MemberID is an opaque string that uniquely keys a member.
type MemberID = string

type MemberInfo struct {
	ID MemberID `json:"id"`
	// Members who MAY represent this one, most preferred first.
	Preferences []MemberID `json:"preferences"`
}

// Problem is a proxy-representation problem to solve.
type Problem struct {
	// How many absent members each present member MAY represent.
	Capacity int `json:"capacity"`
	// All members, present and absent.
	Members []MemberInfo `json:"members"`
	// Present members only, who CAN represent absent members.
	MembersPresent []MemberID `json:"members_present"`
}

// Solution is deterministic and constant for a given Problem and seed.
type Solution struct {
	Represented   Represented `json:"members_represented"`
	Unrepresented []MemberID  `json:"members_unrepresented"`

	capacity int
	present  int
}

// Representation is absent member Absent represented by present member Proxy.
type Representation struct {
	Absent MemberID
	Proxy  MemberID
}

// Metrics are recomputed from the Problem or Solution every time; they are
// never stored.
type Metrics struct {
	Capacity      int `json:"capacity"`
	Total         int `json:"total"`
	Present       int `json:"present"`
	Absent        int `json:"absent"`
	Represented   int `json:"represented"`
	Unrepresented int `json:"unrepresented"`
}

func (m Metrics) Fields() logrus.Fields {
	return logrus.Fields{
		"capacity":      m.Capacity,
		"total":         m.Total,
		"present":       m.Present,
		"absent":        m.Absent,
		"represented":   m.Represented,
		"unrepresented": m.Unrepresented,
	}
}

// DefaultSeed seeds the lottery unless a Solver says otherwise.
const DefaultSeed int64 = 0

type Solver struct {
	// Seed of the lottery breaking ties between requesters of a full proxy.
	Seed int64
	// Log may be nil.
	Log logrus.FieldLogger
}
