package alert

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
)

// Dispatcher fans out evaluation events to matching webhook configurations.
type Dispatcher struct {
	configs []AlertConfig
	client  *http.Client
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher from webhook configurations.
// Returns nil if configs is empty (callers should nil-check).
func NewDispatcher(configs []AlertConfig) *Dispatcher {
	if len(configs) == 0 {
		return nil
	}
	return &Dispatcher{
		configs: configs,
		client:  &http.Client{Timeout: deliverTimeout},
	}
}

// Dispatch sends the event to all webhooks matching the event's risk
// level. Deliveries run in the background; short-lived callers must
// Flush before exiting or in-flight posts are lost.
func (d *Dispatcher) Dispatch(event AlertEvent) {
	for _, cfg := range d.configs {
		if !cfg.matchesLevel(event.Level) {
			continue
		}
		d.wg.Add(1)
		go func(cfg AlertConfig) {
			defer d.wg.Done()
			if err := d.deliver(context.Background(), cfg, event); err != nil {
				fmt.Fprintf(os.Stderr, "alert delivery failed: %v\n", err)
			}
		}(cfg)
	}
}

// Flush blocks until all in-flight deliveries finish.
func (d *Dispatcher) Flush() {
	d.wg.Wait()
}
