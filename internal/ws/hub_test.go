package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomJoinLeave(t *testing.T) {
	hub := NewHub()
	room := hub.GetOrCreateRoom(1)
	assert.Same(t, room, hub.GetOrCreateRoom(1))
	assert.Same(t, room, hub.GetRoom(1))

	c := &Client{Send: make(chan []byte, 1)}
	room.Join(c)
	assert.Equal(t, 1, room.ClientCount())

	c.Close()
	assert.Equal(t, 0, room.ClientCount())

	hub.RemoveRoom(1)
	assert.Nil(t, hub.GetRoom(1))
}

func TestRoomBroadcastSkipsSender(t *testing.T) {
	room := NewRoom(1)
	sender := &Client{Send: make(chan []byte, 1)}
	receiver := &Client{Send: make(chan []byte, 1)}
	room.Join(sender)
	room.Join(receiver)

	room.Broadcast(sender, map[string]string{"type": "message"})

	assert.Len(t, receiver.Send, 1)
	assert.Len(t, sender.Send, 0)
}

func TestNotifyRoom_MissingRoomIsNoop(t *testing.T) {
	hub := NewHub()
	// Must not panic when nobody ever opened the feed.
	hub.NotifyRoom(99, map[string]string{"type": "state"})
}

func TestClientCloseIsIdempotent(t *testing.T) {
	c := &Client{Send: make(chan []byte, 1)}
	c.Close()
	c.Close()
}

// A closed client has already left its room, so broadcasting afterwards
// never touches its closed channel.
func TestBroadcastAfterClientClose(t *testing.T) {
	room := NewRoom(1)
	gone := &Client{Send: make(chan []byte, 1)}
	stays := &Client{Send: make(chan []byte, 1)}
	room.Join(gone)
	room.Join(stays)

	gone.Close()
	assert.Equal(t, 1, room.ClientCount())

	room.Broadcast(nil, map[string]string{"type": "message"})
	assert.Len(t, stays.Send, 1)
}
