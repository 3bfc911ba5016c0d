// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxy

import (
	"io"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/someonegg/proxymatch"
)

// Solve solves the problem with the DefaultSeed.
func Solve(p *Problem) *Solution {
	s := Solver{Seed: DefaultSeed}
	return s.Solve(p)
}

// Solve computes the solution of the problem. It never fails: hosts
// without capacity, members without preferences and empty member lists
// all yield a (possibly empty) solution.
func (s *Solver) Solve(p *Problem) *Solution {
	log := s.logger()

	hosts := genHosts(p.MembersPresent, p.Capacity)
	requesters := genRequesters(p.Members, hosts)

	log.WithFields(problemMetrics(p.Capacity, hosts, requesters).Fields()).Info("defined problem")

	matcher := proxymatch.DeferredAcceptance(proxymatch.SeededLottery(s.Seed), log)
	placement, perfect := matcher.Match(hosts, requesters)

	solution := assemble(hosts, requesters, placement)
	solution.capacity = p.Capacity

	for _, r := range solution.Represented {
		log.WithFields(logrus.Fields{
			"proxy_for": r.Absent, "proxied_by": r.Proxy,
		}).Debug("proxy assigned")
	}
	log.WithFields(solution.Metrics().Fields()).WithField("perfect", perfect).Info("found solution")

	return solution
}

func (s *Solver) logger() logrus.FieldLogger {
	if s.Log != nil {
		return s.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// assemble flattens each proxy's P -> {A1, A2, ...} into A1 -> P, A2 -> P.
func assemble(hosts []proxymatch.Host, requesters []proxymatch.Requester, placement proxymatch.Placement) *Solution {
	solution := &Solution{
		Represented:   make(Represented, 0, len(requesters)),
		Unrepresented: make([]MemberID, 0),
		present:       len(hosts),
	}

	represented := make(map[MemberID]bool, len(requesters))
	for _, h := range hosts {
		for _, absent := range placement[h.ID] {
			if represented[absent] {
				continue
			}
			represented[absent] = true
			solution.Represented = append(solution.Represented, Representation{Absent: absent, Proxy: h.ID})
		}
	}

	for _, r := range requesters {
		if !represented[r.ID] {
			solution.Unrepresented = append(solution.Unrepresented, r.ID)
		}
	}

	sort.Slice(solution.Represented, func(i, j int) bool {
		return solution.Represented[i].Absent < solution.Represented[j].Absent
	})
	sort.Strings(solution.Unrepresented)

	return solution
}

// Metrics of the problem before it is solved: every absent member counts
// as unrepresented.
func (p *Problem) Metrics() Metrics {
	hosts := genHosts(p.MembersPresent, p.Capacity)
	requesters := genRequesters(p.Members, hosts)
	return problemMetrics(p.Capacity, hosts, requesters)
}

func problemMetrics(capacity int, hosts []proxymatch.Host, requesters []proxymatch.Requester) Metrics {
	return Metrics{
		Capacity:      capacity,
		Total:         len(hosts) + len(requesters),
		Present:       len(hosts),
		Absent:        len(requesters),
		Represented:   0,
		Unrepresented: len(requesters),
	}
}

// Metrics of the solution. Capacity and Present are only known to
// solutions produced by a Solver, a decoded solution reports them as zero.
func (s *Solution) Metrics() Metrics {
	absent := len(s.Represented) + len(s.Unrepresented)
	return Metrics{
		Capacity:      s.capacity,
		Total:         s.present + absent,
		Present:       s.present,
		Absent:        absent,
		Represented:   len(s.Represented),
		Unrepresented: len(s.Unrepresented),
	}
}
