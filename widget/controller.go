package widget

import (
	"context"
	"log"
	"sync"

	"github.com/fhsmendes/weather-widget/utils"
)

// Controller turns a city name into one of the three display states. It is safe
// for concurrent use; the lock is never held while a lookup is in flight.
type Controller struct {
	client utils.WeatherAPIClient

	mu    sync.Mutex
	input string
	state State

	// issued counts lookups started; applied is the newest one whose outcome
	// (or a later Clear) is on display. Outcomes at or below applied are stale.
	issued  uint64
	applied uint64
}

func NewController(client utils.WeatherAPIClient) *Controller {
	return &Controller{client: client, state: Idle{}}
}

// Search looks up city and moves to Success or Failure. An empty city leaves
// the widget untouched. A lookup that resolves after a newer lookup, or after a
// Clear issued later, is dropped.
func (c *Controller) Search(ctx context.Context, city string) Snapshot {
	if city == "" {
		return c.Snapshot()
	}

	c.mu.Lock()
	c.issued++
	seq := c.issued
	c.input = city
	c.mu.Unlock()

	result, err := c.client.GetWeather(ctx, city)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq <= c.applied {
		log.Printf("discarding stale lookup #%d for %q", seq, city)
		return c.snapshotLocked()
	}
	c.applied = seq

	if err != nil {
		log.Printf("Error fetching weather data: %v", err)
		c.state = Failure{Message: NotFoundMessage}
	} else {
		c.state = Success{Result: result}
	}
	return c.snapshotLocked()
}

// Clear empties the input and returns to Idle.
func (c *Controller) Clear() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.input = ""
	c.state = Idle{}
	c.applied = c.issued
	return c.snapshotLocked()
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{Input: c.input, State: c.state}
}
