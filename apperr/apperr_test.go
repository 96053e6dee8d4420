package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"itemshare/apperr"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(apperr.NotFound("gone")))
	require.Equal(t, apperr.KindInvalid, apperr.KindOf(apperr.Invalid("bad")))
	require.Equal(t, apperr.KindConflict, apperr.KindOf(apperr.Conflict("dup")))
	require.Equal(t, apperr.Kind(0), apperr.KindOf(errors.New("plain")))
	require.Equal(t, apperr.Kind(0), apperr.KindOf(nil))
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", apperr.Conflict("dup"))
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestUnsupportedStateMessage(t *testing.T) {
	err := apperr.UnsupportedState("SOON")
	require.Equal(t, apperr.KindUnsupportedState, apperr.KindOf(err))
	require.EqualError(t, err, "Unknown state: SOON")
}
