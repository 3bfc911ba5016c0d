// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxy

// Counting tells which members a threshold counts.
type Counting string

const (
	CountPresent              Counting = "present"
	CountPresentOrRepresented Counting = "present_or_represented"
)

type Rule struct {
	Name     string
	Counting Counting
	// Required returns how many counted members are needed out of total.
	Required func(total int) int
}

type Threshold struct {
	Name     string   `json:"name"`
	Counting Counting `json:"counting"`
	Required int      `json:"required"`
	Counted  int      `json:"counted"`
	Met      bool     `json:"met"`
}

type QuorumReport struct {
	Total       int         `json:"total"`
	Present     int         `json:"present"`
	Represented int         `json:"represented"`
	Thresholds  []Threshold `json:"thresholds"`
}

// Rules are the meeting's standing thresholds.
var Rules = []Rule{
	{"members_quorum_present", CountPresent, func(total int) int {
		return ceilDiv(total, 3)
	}},
	{"members_quorum_present_or_represented", CountPresentOrRepresented, func(total int) int {
		return ceilDiv(2*total, 3)
	}},
	{"membership_election", CountPresentOrRepresented, func(total int) int {
		return ceilDiv(75*total, 100)
	}},
	{"bylaws_amendment", CountPresentOrRepresented, func(total int) int {
		return ceilDiv(75*total, 100)
	}},
	{"constitutional_amendment", CountPresentOrRepresented, func(total int) int {
		return ceilDiv(85*total, 100)
	}},
	{"directors_quorum", CountPresent, func(total int) int {
		// ceil(5 + (total-15)/10)
		return ceilDiv(total+35, 10)
	}},
}

// Quorum checks the metrics of a solution against the Rules.
func Quorum(m Metrics) QuorumReport {
	report := QuorumReport{
		Total:       m.Total,
		Present:     m.Present,
		Represented: m.Represented,
		Thresholds:  make([]Threshold, 0, len(Rules)),
	}

	for _, rule := range Rules {
		counted := m.Present
		if rule.Counting == CountPresentOrRepresented {
			counted += m.Represented
		}
		required := rule.Required(m.Total)
		report.Thresholds = append(report.Thresholds, Threshold{
			Name:     rule.Name,
			Counting: rule.Counting,
			Required: required,
			Counted:  counted,
			Met:      counted >= required,
		})
	}

	return report
}

// Met reports whether every threshold is met.
func (r QuorumReport) Met() bool {
	for _, t := range r.Thresholds {
		if !t.Met {
			return false
		}
	}
	return true
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
