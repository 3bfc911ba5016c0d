// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requiredBy(t *testing.T, report QuorumReport, name string) Threshold {
	t.Helper()
	for _, th := range report.Thresholds {
		if th.Name == name {
			return th
		}
	}
	require.Failf(t, "missing threshold", "%s", name)
	return Threshold{}
}

func TestQuorum_Thresholds(t *testing.T) {
	tests := []struct {
		total int
		want  map[string]int
	}{
		{0, map[string]int{
			"members_quorum_present":                0,
			"members_quorum_present_or_represented": 0,
			"membership_election":                   0,
			"bylaws_amendment":                      0,
			"constitutional_amendment":              0,
			"directors_quorum":                      4,
		}},
		{6, map[string]int{
			"members_quorum_present":                2,
			"members_quorum_present_or_represented": 4,
			"membership_election":                   5,
			"bylaws_amendment":                      5,
			"constitutional_amendment":              6,
			"directors_quorum":                      5,
		}},
		{15, map[string]int{
			"members_quorum_present":                5,
			"members_quorum_present_or_represented": 10,
			"membership_election":                   12,
			"bylaws_amendment":                      12,
			"constitutional_amendment":              13,
			"directors_quorum":                      5,
		}},
		{100, map[string]int{
			"members_quorum_present":                34,
			"members_quorum_present_or_represented": 67,
			"membership_election":                   75,
			"bylaws_amendment":                      75,
			"constitutional_amendment":              85,
			"directors_quorum":                      14,
		}},
	}

	for _, tt := range tests {
		report := Quorum(Metrics{Total: tt.total})
		require.Len(t, report.Thresholds, len(Rules))
		for name, want := range tt.want {
			assert.Equal(t, want, requiredBy(t, report, name).Required, "total %d, %s", tt.total, name)
		}
	}
}

func TestQuorum_Counting(t *testing.T) {
	report := Quorum(Metrics{Total: 9, Present: 3, Represented: 3})

	present := requiredBy(t, report, "members_quorum_present")
	assert.Equal(t, CountPresent, present.Counting)
	assert.Equal(t, 3, present.Counted)
	assert.True(t, present.Met)

	either := requiredBy(t, report, "members_quorum_present_or_represented")
	assert.Equal(t, 6, either.Counted)
	assert.Equal(t, 6, either.Required)
	assert.True(t, either.Met)

	election := requiredBy(t, report, "membership_election")
	assert.Equal(t, 7, election.Required)
	assert.False(t, election.Met)

	assert.False(t, report.Met())
}

func TestQuorum_FromSolution(t *testing.T) {
	solution := Solve(&Problem{
		Capacity:       2,
		Members:        threeMembers(),
		MembersPresent: []MemberID{"reich", "whitney"},
	})

	report := Quorum(solution.Metrics())

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Present)
	assert.Equal(t, 1, report.Represented)
	assert.Equal(t, 3, requiredBy(t, report, "members_quorum_present_or_represented").Counted)
}
