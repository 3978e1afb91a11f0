package notify

import "log"

type Message struct {
	ToName  string
	ToAddr  string
	Subject string
	Body    string
}

// Notifier is the fire-and-forget side of booking notifications. Failures
// are logged, never propagated back into the booking operation.
type Notifier interface {
	Dispatch(msg Message)
}

type Dispatcher struct {
	mailer *Mailer
	queue  chan Message
}

func NewDispatcher(mailer *Mailer) *Dispatcher {
	d := &Dispatcher{
		mailer: mailer,
		queue:  make(chan Message, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for msg := range d.queue {
		if msg.ToAddr == "" {
			continue
		}
		if err := d.mailer.Send(msg); err != nil {
			log.Println("notify error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(msg Message) {
	select {
	case d.queue <- msg:
	default:
		// full queue never blocks a booking
		log.Println("notify queue full, dropping message")
	}
}

var _ Notifier = (*Dispatcher)(nil)
