// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxymatch

import (
	"math/rand"
)

type seededLottery struct {
	seed int64
}

// SeededLottery draws the same order for the same seed and requesters.
// Every Draw uses its own source, so one Lottery may serve concurrent
// matches.
func SeededLottery(seed int64) Lottery {
	return seededLottery{seed}
}

func (l seededLottery) Draw(requesters []Requester) Ranks {
	rng := rand.New(rand.NewSource(l.seed))
	perm := rng.Perm(len(requesters))

	ranks := make(Ranks, len(requesters))
	for i := range requesters {
		ranks[requesters[i].ID] = perm[i]
	}
	return ranks
}
