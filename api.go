// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package proxymatch provides a capacitated deferred acceptance matcher
// that places requesters with hosts, respecting the requesters' ranked
// preferences and breaking the hosts' ties by a seeded lottery.
package proxymatch

type Matcher interface {
	Match(hosts []Host, requesters []Requester) (placement Placement, perfect bool)
}

// Host can hold up to Cap requesters.
type Host struct {
	ID   string
	Cap  int
	Held []string // ordered by lottery priority, best first
}

type Requester struct {
	ID          string
	Preferences []string            // host ids, most preferred first
	Exclusion   map[string]struct{} // host ids never acceptable

	cursor int
}

// Excludes reports whether the host is unacceptable to the requester.
func (r *Requester) Excludes(hostID string) bool {
	_, ok := r.Exclusion[hostID]
	return ok
}

// Lottery ranks requesters; a lower rank wins a contested seat.
type Lottery interface {
	Draw(requesters []Requester) Ranks
}

type Ranks map[string]int // requesterID

// Less orders two requesters by rank, then by id.
func (rs Ranks) Less(a, b string) bool {
	ra, rb := rs[a], rs[b]
	if ra != rb {
		return ra < rb
	}
	return a < b
}

type Placement map[string][]string // hostID
