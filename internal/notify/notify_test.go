package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostAndList(t *testing.T) {
	center := NewCenter(time.Minute)

	center.Post("s1", "success", "Order placed")
	notices := center.List("s1")

	require.Len(t, notices, 1)
	assert.Equal(t, "Order placed", notices[0].Message)
	assert.Empty(t, center.List("s2"))
}

func TestDismissCancelsTimer(t *testing.T) {
	center := NewCenter(time.Minute)

	id := center.Post("s1", "info", "first")
	center.Dismiss("s1", id)

	assert.Empty(t, center.List("s1"))
	// dismissing again is a no-op
	center.Dismiss("s1", id)
}

func TestAutoDismissRemovesOnlyItsNotice(t *testing.T) {
	center := NewCenter(20 * time.Millisecond)

	center.Post("s1", "info", "short-lived")
	time.Sleep(80 * time.Millisecond)
	kept := center.Post("s1", "info", "fresh")

	notices := center.List("s1")
	require.Len(t, notices, 1)
	assert.Equal(t, kept, notices[0].ID)

	center.DropSession("s1")
	assert.Empty(t, center.List("s1"))
}
