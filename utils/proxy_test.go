package utils

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProxyListSkipsCommentsAndBlanks(t *testing.T) {
	list, err := ParseProxyList(strings.NewReader("# pool A\n10.0.0.1:8080\n\n  10.0.0.2:3128  \n#10.0.0.3:1\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1:8080", "10.0.0.2:3128"}, list)
}

func TestLoadProxyList(t *testing.T) {
	list, err := LoadProxyList("")
	require.NoError(t, err)
	assert.Nil(t, list)

	path := filepath.Join(t.TempDir(), "proxies.txt")
	require.NoError(t, os.WriteFile(path, []byte("1.2.3.4:80\n"), 0644))
	list, err = LoadProxyList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.2.3.4:80"}, list)

	_, err = LoadProxyList(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestPickProxy(t *testing.T) {
	assert.Equal(t, "", PickProxy(nil, nil))
	pool := []string{"a:1", "b:2", "c:3"}
	got := PickProxy(pool, rand.New(rand.NewSource(1)))
	assert.Contains(t, pool, got)
}
