package mqtt

// queuedMsg stores a serialized MQTT message for replay after reconnection.
type queuedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// backlog is a fixed-capacity FIFO holding messages published while the
// broker is unreachable. When full, the oldest message is overwritten.
// Not safe for concurrent use; the publisher synchronizes access.
type backlog struct {
	buf     []queuedMsg
	head    int // next write position
	count   int
	dropped int // messages overwritten since the last drain
}

func newBacklog(capacity int) *backlog {
	return &backlog{buf: make([]queuedMsg, capacity)}
}

func (b *backlog) add(msg queuedMsg) {
	if b.count == len(b.buf) {
		// Oldest message lives at head; overwrite it.
		b.dropped++
		b.buf[b.head] = msg
		b.head = (b.head + 1) % len(b.buf)
		return
	}
	b.buf[b.head] = msg
	b.head = (b.head + 1) % len(b.buf)
	b.count++
}

// drain returns the queued messages in arrival order along with the
// number dropped to overflow, and empties the backlog.
func (b *backlog) drain() ([]queuedMsg, int) {
	dropped := b.dropped
	if b.count == 0 {
		b.dropped = 0
		return nil, dropped
	}

	out := make([]queuedMsg, b.count)
	start := (b.head - b.count + len(b.buf)) % len(b.buf)
	for i := 0; i < b.count; i++ {
		out[i] = b.buf[(start+i)%len(b.buf)]
	}

	b.count = 0
	b.head = 0
	b.dropped = 0
	return out, dropped
}

func (b *backlog) len() int {
	return b.count
}
