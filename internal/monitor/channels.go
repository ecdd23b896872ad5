package monitor

import (
	"codeberg.org/mutker/sysmon/internal/transport"
)

// Channel names.
const (
	ChanCPUPrev   = "cpu-prev"
	ChanCPUCurr   = "cpu-curr"
	ChanMemory    = "memory"
	ChanUserCount = "user-count"
	ChanUserBlob  = "user-blob"
)

type endpoint struct {
	r transport.Receiver
	w transport.Sender
}

// openChannel creates one named channel; tests replace it to inject faults.
var openChannel = func(name string) (transport.Receiver, transport.Sender, error) {
	r, w, err := transport.Pipe(name)
	if err != nil {
		return nil, nil, err
	}
	return r, w, nil
}

// channels holds the five sample channels of one run.
type channels struct {
	cpuPrev   endpoint
	cpuCurr   endpoint
	memory    endpoint
	userCount endpoint
	userBlob  endpoint
}

// openChannels opens every channel or none.
func openChannels() (*channels, error) {
	c := &channels{}
	targets := []struct {
		name string
		ep   *endpoint
	}{
		{ChanCPUPrev, &c.cpuPrev},
		{ChanCPUCurr, &c.cpuCurr},
		{ChanMemory, &c.memory},
		{ChanUserCount, &c.userCount},
		{ChanUserBlob, &c.userBlob},
	}

	for _, t := range targets {
		r, w, err := openChannel(t.name)
		if err != nil {
			c.closeAll()
			return nil, err
		}
		t.ep.r, t.ep.w = r, w
	}

	return c, nil
}

func (c *channels) all() []*endpoint {
	return []*endpoint{&c.cpuPrev, &c.cpuCurr, &c.memory, &c.userCount, &c.userBlob}
}

// closeReaders unblocks any pending read on the consumer side.
func (c *channels) closeReaders() {
	for _, ep := range c.all() {
		if ep.r != nil {
			_ = ep.r.Close()
		}
	}
}

func (c *channels) closeAll() {
	for _, ep := range c.all() {
		if ep.w != nil {
			_ = ep.w.Close()
		}
		if ep.r != nil {
			_ = ep.r.Close()
		}
	}
}
