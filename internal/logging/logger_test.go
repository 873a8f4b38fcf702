package logging

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(string, ...interface{}) { called = true })
	Logf("test message")
	require.True(t, called)

	called = false
	SetLogger(nil)
	Logf("test message")
	require.False(t, called)
}

func TestSetupWritesToFile(t *testing.T) {
	prevOut, prevFlags, prevPrefix := log.Writer(), log.Flags(), log.Prefix()
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
		log.SetPrefix(prevPrefix)
	})

	path := filepath.Join(t.TempDir(), "safechat.log")
	closer, err := Setup(path, "safechat")
	require.NoError(t, err)
	log.Printf("hello %d", 42)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "hello 42"))
	require.True(t, strings.HasPrefix(string(data), "safechat"))
}

func TestSetupWithoutPathDiscards(t *testing.T) {
	prevOut := log.Writer()
	t.Cleanup(func() { log.SetOutput(prevOut) })

	closer, err := Setup("", "")
	require.NoError(t, err)
	require.NoError(t, closer.Close())
}
