package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURLKey(t *testing.T) {
	assert.Equal(t, "https://www.google.com/maps/place/A", NormalizeURLKey("HTTPS://WWW.Google.com/maps/place/A/?hl=fr#x"))
	assert.Equal(t, "", NormalizeURLKey("   "))
	assert.Equal(t, "not a url", NormalizeURLKey("not a url/"))
}

func TestURLTrackerKeepsFirstSeenOrder(t *testing.T) {
	tr := NewURLTracker()
	assert.True(t, tr.Add("https://maps.example/place/b"))
	assert.True(t, tr.Add("https://maps.example/place/a"))
	assert.False(t, tr.Add("https://maps.example/place/b?authuser=0"))
	assert.False(t, tr.Add(""))

	entries := tr.Entries()
	assert.Equal(t, 2, tr.Count())
	assert.Equal(t, "https://maps.example/place/b", entries[0].URL)
	assert.Equal(t, "https://maps.example/place/a", entries[1].URL)

	entries[0].URL = "mutated"
	assert.Equal(t, "https://maps.example/place/b", tr.Entries()[0].URL)
}
