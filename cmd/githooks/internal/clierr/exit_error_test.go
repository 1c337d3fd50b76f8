// SPDX-License-Identifier: AGPL-3.0-or-later

package clierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeOf(t *testing.T) {
	cause := errors.New("boom")

	assert.Equal(t, 0, ExitCodeOf(nil))
	assert.Equal(t, ExitCheckFailed, ExitCodeOf(cause))
	assert.Equal(t, ExitConfig, ExitCodeOf(Wrap(ExitConfig, "loading config", cause)))
	assert.Equal(t, ExitUsage, ExitCodeOf(fmt.Errorf("outer: %w", Newf(ExitUsage, "bad id %q", "x"))))
	assert.Equal(t, 1, ExitCodeOf(Newf(0, "zero is not an error code")))
	assert.Equal(t, 1, ExitCodeOf(Wrap(-3, "negative", cause)))
}

func TestExitError_Wrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ExitRepository, "reading commits", cause)

	assert.EqualError(t, err, "reading commits: boom")
	assert.ErrorIs(t, err, cause)
	assert.EqualError(t, Wrap(ExitRepository, "no cause", nil), "no cause")
}
