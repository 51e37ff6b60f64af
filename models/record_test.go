package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextListMarshalsSentinelWhenEmpty(t *testing.T) {
	data, err := json.Marshal(struct {
		L TextList `json:"l"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"l":"Não disponível"}`, string(data))
}

func TestTextListRoundTripsSentinel(t *testing.T) {
	var l TextList
	require.NoError(t, json.Unmarshal([]byte(`"Não disponível"`), &l))
	assert.Empty(t, l)

	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &l))
	assert.Equal(t, TextList{"a", "b"}, l)
}
