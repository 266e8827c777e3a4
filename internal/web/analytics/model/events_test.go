package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventTypeValid(t *testing.T) {
	t.Parallel()

	for _, typ := range []EventType{
		EventTypePageView, EventTypePostView,
		EventTypeUserAction, EventTypeSearch, EventTypeError,
	} {
		require.True(t, typ.Valid(), string(typ))
	}

	require.False(t, EventType("click").Valid())
	require.False(t, EventType("").Valid())
}

func TestNewEvent(t *testing.T) {
	t.Parallel()

	ev := NewEvent()
	require.False(t, ev.ID.IsZero())
	require.False(t, ev.Timestamp.IsZero())
	require.Nil(t, ev.Location)
	require.Nil(t, ev.Referrer)
}
