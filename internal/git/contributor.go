// SPDX-License-Identifier: AGPL-3.0-or-later

package git

import (
	"bytes"
	"strconv"
	"strings"
	"time"
)

// Contributor is the author or committer recorded on a commit.
type Contributor struct {
	Name      string
	Email     string
	Timestamp int64
}

// ParseContributor parses the value of an author or committer header,
// e.g. "Jane Doe <jane@example.com> 1700000000 +0100".
func ParseContributor(line []byte) (Contributor, error) {
	name, rest, ok := bytes.Cut(line, []byte(" <"))
	if !ok {
		return Contributor{}, malformed("contributor %q: missing email", line)
	}
	email, rest, ok := bytes.Cut(rest, []byte("> "))
	if !ok {
		return Contributor{}, malformed("contributor %q: unterminated email", line)
	}
	stamp, _, ok := bytes.Cut(rest, []byte(" "))
	if !ok {
		return Contributor{}, malformed("contributor %q: missing timezone", line)
	}
	ts, err := strconv.ParseInt(string(stamp), 10, 64)
	if err != nil {
		return Contributor{}, malformed("contributor %q: bad timestamp", line)
	}
	return Contributor{
		Name:      decodeText(name),
		Email:     decodeText(email),
		Timestamp: ts,
	}, nil
}

// EmailDomain returns the part of the email after the first "@",
// or the whole email when it has none.
func (c Contributor) EmailDomain() string {
	_, domain, ok := strings.Cut(c.Email, "@")
	if !ok {
		return c.Email
	}
	return domain
}

// Time returns the timestamp in UTC.
func (c Contributor) Time() time.Time {
	return time.Unix(c.Timestamp, 0).UTC()
}

func (c Contributor) String() string {
	return c.Name + " <" + c.Email + ">"
}
