package session

// mailbox is an unbounded FIFO between the controller and the shell. Posting
// never blocks, so the controller can publish from the shell's own goroutine
// (a toggle handler) or from the capture worker without risking a deadlock
// against a consumer that is busy elsewhere.
type mailbox struct {
	in  chan Event
	out chan Event
}

func newMailbox() *mailbox {
	m := &mailbox{
		in:  make(chan Event),
		out: make(chan Event),
	}
	go m.relay()
	return m
}

func (m *mailbox) post(ev Event) {
	m.in <- ev
}

// close stops accepting events; queued ones are still delivered before out
// is closed.
func (m *mailbox) close() {
	close(m.in)
}

func (m *mailbox) relay() {
	defer close(m.out)
	var queue []Event
	in := m.in
	for in != nil || len(queue) > 0 {
		var out chan Event
		var next Event
		if len(queue) > 0 {
			out = m.out
			next = queue[0]
		}
		select {
		case ev, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			queue = append(queue, ev)
		case out <- next:
			queue[0] = Event{}
			queue = queue[1:]
		}
	}
}
