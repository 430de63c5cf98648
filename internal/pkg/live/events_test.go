package live

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeWrapsDataInEnvelope(t *testing.T) {
	frame, err := Encode(EventMessagesSeen, SeenPayload{ConversationID: "c1"})
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(frame, &env))
	assert.Equal(t, EventMessagesSeen, env.Type)
	assert.Len(t, env.EventID, 26, "event ids are ULIDs")

	var p SeenPayload
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "c1", p.ConversationID)
}

func TestEncodeNilData(t *testing.T) {
	frame, err := Encode(EventConnected, nil)
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(frame, &env))
	assert.Equal(t, EventConnected, env.Type)
	assert.Empty(t, env.Data)
}

func TestEncodeIDsAreUnique(t *testing.T) {
	a, err := Encode(EventConnected, nil)
	require.NoError(t, err)
	b, err := Encode(EventConnected, nil)
	require.NoError(t, err)

	var envA, envB Envelope
	require.NoError(t, json.Unmarshal(a, &envA))
	require.NoError(t, json.Unmarshal(b, &envB))
	assert.NotEqual(t, envA.EventID, envB.EventID)
}
