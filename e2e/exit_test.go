//go:build e2e && unix

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplicationExit(t *testing.T) {
	t.Parallel()
	tf := startCarousel(t, "exit.png")

	t.Logf("Sending 'q' to quit application...")
	tf.Quit()

	exited, exitErr := tf.WaitExit(1500 * time.Millisecond)
	if !exited {
		t.Logf("'q' didn't work within 1.5 seconds, using Ctrl+C")
		tf.SendCtrlC()
		exited, exitErr = tf.WaitExit(750 * time.Millisecond)
	}
	if !exited {
		tf.DumpTailOnFail(t, "exit-failure", 4096)
		t.Fatal("Application did not exit within total timeout")
	}
	require.NoError(t, exitErr, "quit should exit cleanly")
}

func TestExitWithCtrlC(t *testing.T) {
	t.Parallel()
	tf := startCarousel(t, "exit.png")

	tf.SendCtrlC()
	exited, exitErr := tf.WaitExit(2 * time.Second)
	require.True(t, exited, "app did not exit after ctrl+c")
	require.NoError(t, exitErr)
}

func TestEmptyDirectoryFails(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err)
	require.NoError(t, tf.CreatePictures("notes.txt"))

	require.NoError(t, tf.StartApp("-d", workspace))

	exited, exitErr := tf.WaitExit(3 * time.Second)
	require.True(t, exited, "app should refuse an empty picture set")
	require.Error(t, exitErr)
	require.True(t, strings.Contains(tf.SnapshotPlain(), "no pictures found"), "should explain why it exited")
}
