// SPDX-License-Identifier: AGPL-3.0-or-later

package git

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContributor(t *testing.T) {
	c, err := ParseContributor([]byte("Jane Q. Doe <jane@dev.example.com> 1700000000 +0100"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Q. Doe", c.Name)
	assert.Equal(t, "jane@dev.example.com", c.Email)
	assert.Equal(t, int64(1700000000), c.Timestamp)
	assert.Equal(t, "dev.example.com", c.EmailDomain())
	assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), c.Time())
	assert.Equal(t, "Jane Q. Doe <jane@dev.example.com>", c.String())
}

func TestParseContributor_Latin1Name(t *testing.T) {
	c, err := ParseContributor([]byte("Ren\xe9 <rene@example.com> 1 +0000"))
	require.NoError(t, err)
	assert.Equal(t, "René", c.Name)
}

func TestParseContributor_Malformed(t *testing.T) {
	tests := []string{
		"no email 1700000000 +0000",
		"Jane <jane@example.com",
		"Jane <jane@example.com> 1700000000",
		"Jane <jane@example.com> soon +0000",
	}
	for _, line := range tests {
		t.Run(line, func(t *testing.T) {
			_, err := ParseContributor([]byte(line))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestContributor_EmailDomain(t *testing.T) {
	assert.Equal(t, "b@c", Contributor{Email: "a@b@c"}.EmailDomain())
	assert.Equal(t, "nodomain", Contributor{Email: "nodomain"}.EmailDomain())
}
