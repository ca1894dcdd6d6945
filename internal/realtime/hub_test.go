package realtime

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu   sync.Mutex
	msgs [][]byte
	fail bool
}

func (f *fakeClient) Send(message []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return false
	}
	f.msgs = append(f.msgs, message)
	return true
}

func (f *fakeClient) Close() {}

func (f *fakeClient) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.msgs)
}

func TestHub_RegisterBroadcastUnregister(t *testing.T) {
	h := NewHub(nil)
	a1, a2, b := &fakeClient{}, &fakeClient{}, &fakeClient{}
	h.Register("a", a1)
	h.Register("a", a2)
	h.Register("b", b)
	assert.Equal(t, 3, h.Connections())

	h.Broadcast("a", []byte("hi"))
	assert.Equal(t, 1, a1.count())
	assert.Equal(t, 1, a2.count())
	assert.Equal(t, 0, b.count())

	h.Unregister("a", a1)
	h.Unregister("a", a2)
	assert.Equal(t, 1, h.Connections())
	h.Unregister("missing", b)
	assert.Equal(t, 1, h.Connections())
}

func TestHub_PublishReachesEveryone(t *testing.T) {
	h := NewHub(nil)
	a, b, broken := &fakeClient{}, &fakeClient{}, &fakeClient{fail: true}
	h.Register("a", a)
	h.Register("b", b)
	h.Register("c", broken)

	at := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	h.Publish(Event{Type: ActionUpdated, Collection: "tasks", EntityID: "3", ActorID: "a", At: at})

	require.Equal(t, 1, a.count())
	require.Equal(t, 1, b.count())

	var got Event
	require.NoError(t, json.Unmarshal(a.msgs[0], &got))
	assert.Equal(t, ActionUpdated, got.Type)
	assert.Equal(t, "tasks", got.Collection)
	assert.Equal(t, "3", got.EntityID)
	assert.True(t, at.Equal(got.At))
}

func TestHub_NotifyTargetsOneUser(t *testing.T) {
	h := NewHub(nil)
	assignee, other := &fakeClient{}, &fakeClient{}
	h.Register("3", assignee)
	h.Register("1", other)

	h.Notify("3", Event{Type: ActionAssigned, Collection: "tasks", EntityID: "7", ActorID: "1"})

	require.Equal(t, 1, assignee.count())
	assert.Equal(t, 0, other.count())
	var got Event
	require.NoError(t, json.Unmarshal(assignee.msgs[0], &got))
	assert.Equal(t, ActionAssigned, got.Type)
	assert.Equal(t, "7", got.EntityID)
}
