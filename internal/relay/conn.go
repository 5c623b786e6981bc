// Package relay implements the presence-and-routing core of the meeting
// signaling server: which participant is on which connection, which
// connections are in which room, point-to-point signal routing and
// room-scoped broadcast. It never inspects media content.
package relay

// Frame is a serialized wire message ready for transport delivery.
type Frame []byte

// Conn abstracts a participant's messaging transport endpoint.
// Owned by the adapter; the adapter must close it. Delivery is
// fire-and-forget: a failed or dropped send is not surfaced to senders.
type Conn interface {
	// ID returns the transport-assigned connection identifier.
	ID() string
	// TrySend enqueues a frame without blocking. It returns an error if
	// the connection is closed or its send buffer is full.
	TrySend(Frame) error
}
