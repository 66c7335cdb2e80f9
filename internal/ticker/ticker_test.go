package ticker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicker_Fires(t *testing.T) {
	tk := New()
	defer tk.Stop()

	tk.Start(5 * time.Millisecond)
	require.True(t, tk.Running())

	select {
	case <-tk.C():
	case <-time.After(time.Second):
		t.Fatal("ticker did not fire")
	}
}

func TestTicker_RestartRemovesPrevious(t *testing.T) {
	tk := New()
	defer tk.Stop()

	tk.Start(5 * time.Millisecond)
	old := tk.C()

	tk.Start(time.Hour)
	assert.NotEqual(t, old, tk.C())

	select {
	case <-old:
		t.Fatal("previous ticker still fires after restart")
	case <-time.After(30 * time.Millisecond):
	}
}

func TestTicker_Stop(t *testing.T) {
	tk := New()
	assert.Nil(t, tk.C())
	assert.False(t, tk.Running())

	tk.Start(time.Millisecond)
	tk.Stop()
	tk.Stop()

	assert.Nil(t, tk.C())
	assert.False(t, tk.Running())
}
