package audit

import (
	"sync"

	"github.com/BruksfildServices01/ironpeak-gym/internal/logger"
)

type Event struct {
	Action   string
	Entity   string
	EntityID *string
	Metadata any
}

// Writer persists one audit event.
type Writer interface {
	Log(ev Event) error
}

type Dispatcher struct {
	writer Writer
	queue  chan Event

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(writer Writer) *Dispatcher {
	d := &Dispatcher{
		writer: writer,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.writer.Log(ev); err != nil {
			logger.Error("audit write failed", "action", ev.Action, "error", err)
		}
	}
}

// Dispatch never blocks: when the queue is full the event is dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		logger.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	<-d.done
}
