package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeepAliveScheduler(t *testing.T) {
	pinged := make(chan struct{}, 1)
	c, err := InitializeKeepAliveScheduler("@every 1s", func() error {
		select {
		case pinged <- struct{}{}:
		default:
		}
		return nil
	})
	require.NoError(t, err)
	defer func() { <-c.Stop().Done() }()

	select {
	case <-pinged:
	case <-time.After(3 * time.Second):
		t.Fatal("keep-alive ping did not run")
	}
}

func TestKeepAliveSchedulerBadSpec(t *testing.T) {
	_, err := InitializeKeepAliveScheduler("every now and then", func() error { return nil })
	assert.Error(t, err)
}
