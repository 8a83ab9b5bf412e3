package mqtt

import "log"

// bufferedMsg stores a serialized MQTT message for replay after reconnection.
type bufferedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
	// latest marks state messages: only the newest one queued per topic is
	// worth replaying.
	latest bool
}

// outbox holds messages published while the broker is unreachable, oldest
// first. A latest message replaces the one already queued for its topic, so
// scrubbing the chart offline replays a single highlight. When full, the
// oldest message is dropped. Not safe for concurrent use; caller must
// synchronize.
type outbox struct {
	msgs       []bufferedMsg
	capacity   int
	warned     bool // full warning logged since last drain
	dropped    int
	superseded int
}

func newOutbox(capacity int) *outbox {
	return &outbox{
		msgs:     make([]bufferedMsg, 0, capacity),
		capacity: capacity,
	}
}

func (o *outbox) push(msg bufferedMsg) {
	if msg.latest {
		for i, m := range o.msgs {
			if m.latest && m.topic == msg.topic {
				o.remove(i)
				o.superseded++
				break
			}
		}
	}
	if len(o.msgs) == o.capacity {
		if !o.warned {
			log.Printf("mqtt: buffer full (%d messages), dropping oldest", o.capacity)
			o.warned = true
		}
		o.remove(0)
		o.dropped++
	}
	o.msgs = append(o.msgs, msg)
}

func (o *outbox) remove(i int) {
	copy(o.msgs[i:], o.msgs[i+1:])
	o.msgs = o.msgs[:len(o.msgs)-1]
}

// drain returns the queued messages in publish order and empties the outbox.
func (o *outbox) drain() []bufferedMsg {
	if len(o.msgs) == 0 {
		return nil
	}
	out := make([]bufferedMsg, len(o.msgs))
	copy(out, o.msgs)
	o.msgs = o.msgs[:0]
	o.warned = false
	return out
}

func (o *outbox) len() int {
	return len(o.msgs)
}

// droppedTotal reports how many queued messages were lost to a full outbox.
// Superseded highlights are not counted.
func (o *outbox) droppedTotal() int {
	return o.dropped
}
