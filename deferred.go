// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxymatch

import (
	"io"
	"sort"

	"github.com/sirupsen/logrus"
)

type deferredMatcher struct {
	lottery Lottery
	log     logrus.FieldLogger
}

// DeferredAcceptance returns a Matcher running requester-proposing deferred
// acceptance. Hosts have no preferences of their own, an oversubscribed
// host keeps the requesters ranked best by the lottery.
//
// The log may be nil.
func DeferredAcceptance(lottery Lottery, log logrus.FieldLogger) Matcher {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return deferredMatcher{lottery, log}
}

// Match resets the hosts' Held and the requesters' cursors, then runs the
// proposal rounds. The hosts are left holding their final requesters.
func (m deferredMatcher) Match(hosts []Host, requesters []Requester) (placement Placement, perfect bool) {
	index := make(map[string]*Host, len(hosts))
	for i := range hosts {
		hosts[i].Held = hosts[i].Held[:0]
		index[hosts[i].ID] = &hosts[i]
	}
	for i := range requesters {
		requesters[i].cursor = 0
	}

	ranks := m.lottery.Draw(requesters)
	holder := make(map[string]string, len(requesters)) // requesterID -> hostID

	for round := 1; ; round++ {
		proposals := 0

		for i := range requesters {
			r := &requesters[i]
			if _, settled := holder[r.ID]; settled || r.cursor >= len(r.Preferences) {
				continue
			}

			hostID := r.Preferences[r.cursor]
			r.cursor++
			proposals++

			host, ok := index[hostID]
			if !ok || r.Excludes(hostID) {
				m.log.WithFields(logrus.Fields{
					"requester": r.ID, "host": hostID,
				}).Warn("proposal to unacceptable host rejected")
				continue
			}

			holder[r.ID] = hostID
			evicted, ok := m.hold(host, r.ID, ranks)
			if !ok {
				continue
			}
			delete(holder, evicted)

			m.log.WithFields(logrus.Fields{
				"round": round, "host": hostID, "requester": r.ID, "evicted": evicted,
			}).Debug("proposal exceeds capacity")
		}

		if proposals == 0 {
			break
		}
	}

	placement = make(Placement, len(hosts))
	for i := range hosts {
		if len(hosts[i].Held) > 0 {
			placement[hosts[i].ID] = append([]string(nil), hosts[i].Held...)
		}
	}

	return placement, len(holder) == len(requesters)
}

// hold inserts the requester into the host's Held, keeping it ordered by
// rank, and evicts the worst one if the host is over capacity.
func (m deferredMatcher) hold(host *Host, requesterID string, ranks Ranks) (evicted string, ok bool) {
	at := sort.Search(len(host.Held), func(i int) bool {
		return ranks.Less(requesterID, host.Held[i])
	})
	host.Held = append(host.Held, "")
	copy(host.Held[at+1:], host.Held[at:])
	host.Held[at] = requesterID

	if len(host.Held) <= maxInt(host.Cap, 0) {
		return "", false
	}

	last := len(host.Held) - 1
	evicted = host.Held[last]
	host.Held = host.Held[:last]
	return evicted, true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
