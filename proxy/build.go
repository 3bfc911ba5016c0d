// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxy

import (
	"github.com/someonegg/proxymatch"
)

// genHosts turns every distinct present member into a host.
func genHosts(present []MemberID, capacity int) []proxymatch.Host {
	if capacity < 0 {
		capacity = 0
	}

	seen := make(map[MemberID]bool, len(present))
	hosts := make([]proxymatch.Host, 0, len(present))

	for _, id := range present {
		if seen[id] {
			continue
		}
		seen[id] = true
		hosts = append(hosts, proxymatch.Host{ID: id, Cap: capacity})
	}

	return hosts
}

// genRequesters turns every member who is not a host into a requester.
// A repeated member keeps its first position and its last preferences.
func genRequesters(members []MemberInfo, hosts []proxymatch.Host) []proxymatch.Requester {
	isHost := hostSet(hosts)

	at := make(map[MemberID]int, len(members))
	requesters := make([]proxymatch.Requester, 0, len(members))

	for _, info := range members {
		if isHost[info.ID] {
			continue
		}
		r := newRequester(info, hosts, isHost)
		if i, ok := at[info.ID]; ok {
			requesters[i] = r
			continue
		}
		at[info.ID] = len(requesters)
		requesters = append(requesters, r)
	}

	return requesters
}

// NewRequester keeps only the preferences naming hosts, in order and
// without repeats, and excludes every other host.
func NewRequester(info MemberInfo, hosts []proxymatch.Host) proxymatch.Requester {
	return newRequester(info, hosts, hostSet(hosts))
}

func newRequester(info MemberInfo, hosts []proxymatch.Host, isHost map[MemberID]bool) proxymatch.Requester {
	listed := make(map[MemberID]bool, len(info.Preferences))
	prefs := make([]MemberID, 0, len(info.Preferences))
	for _, id := range info.Preferences {
		if !isHost[id] || listed[id] {
			continue
		}
		listed[id] = true
		prefs = append(prefs, id)
	}

	exclusion := make(map[MemberID]struct{}, len(hosts)-len(prefs))
	for _, h := range hosts {
		if !listed[h.ID] {
			exclusion[h.ID] = struct{}{}
		}
	}

	return proxymatch.Requester{
		ID:          info.ID,
		Preferences: prefs,
		Exclusion:   exclusion,
	}
}

func hostSet(hosts []proxymatch.Host) map[MemberID]bool {
	set := make(map[MemberID]bool, len(hosts))
	for _, h := range hosts {
		set[h.ID] = true
	}
	return set
}
