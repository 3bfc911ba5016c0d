// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxy

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// Represented is encoded as a JSON object of absent -> proxy whose keys
// keep the slice order.
type Represented []Representation

// Proxy returns the member representing the absent one.
func (rs Represented) Proxy(absent MemberID) (MemberID, bool) {
	for _, r := range rs {
		if r.Absent == absent {
			return r.Proxy, true
		}
	}
	return "", false
}

// Map loses the order.
func (rs Represented) Map() map[MemberID]MemberID {
	m := make(map[MemberID]MemberID, len(rs))
	for _, r := range rs {
		m[r.Absent] = r.Proxy
	}
	return m
}

func (rs Represented) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')
	for i, r := range rs {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(r.Absent)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.Proxy)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (rs *Represented) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))

	tok, err := decoder.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*rs = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.Errorf("represented: expected object, got %v", tok)
	}

	out := make(Represented, 0)
	for decoder.More() {
		tok, err := decoder.Token()
		if err != nil {
			return err
		}
		absent, ok := tok.(string)
		if !ok {
			return errors.Errorf("represented: expected key, got %v", tok)
		}
		var proxy MemberID
		if err := decoder.Decode(&proxy); err != nil {
			return errors.Wrapf(err, "represented: proxy of %q", absent)
		}
		out = append(out, Representation{Absent: absent, Proxy: proxy})
	}
	if _, err := decoder.Token(); err != nil {
		return err
	}

	*rs = out
	return nil
}
