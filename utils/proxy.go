package utils

import (
	"bufio"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// ParseProxyList reads newline-delimited host:port entries. Blank lines and
// lines starting with "#" are ignored.
func ParseProxyList(r io.Reader) ([]string, error) {
	var proxies []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrap(err, "read proxy list")
	}
	return proxies, nil
}

// LoadProxyList reads a proxy list file. An empty path yields no proxies.
func LoadProxyList(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open proxy list %s", path)
	}
	defer f.Close()
	return ParseProxyList(f)
}

// PickProxy returns one proxy chosen uniformly at random, or "" for an empty list.
func PickProxy(proxies []string, rng *rand.Rand) string {
	if len(proxies) == 0 {
		return ""
	}
	if rng == nil {
		return proxies[rand.Intn(len(proxies))]
	}
	return proxies[rng.Intn(len(proxies))]
}
