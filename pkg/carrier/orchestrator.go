package carrier

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Orchestrator validates rate requests and fans them out to registered
// carriers. Results are all-or-nothing: the first carrier failure is
// propagated and partial results are discarded.
type Orchestrator struct {
	mu       sync.RWMutex
	carriers map[string]Carrier
	order    []string // registration order, drives result ordering
}

// NewOrchestrator creates an orchestrator over the given carriers.
// Registering zero carriers is a configuration error, not a runtime one.
func NewOrchestrator(carriers ...Carrier) (*Orchestrator, error) {
	if len(carriers) == 0 {
		return nil, fmt.Errorf("orchestrator requires at least one carrier")
	}

	o := &Orchestrator{
		carriers: make(map[string]Carrier, len(carriers)),
	}
	for _, c := range carriers {
		o.Register(c)
	}
	return o, nil
}

// Register adds a carrier. Re-registering a name replaces the carrier but
// keeps its original position in the registration order.
func (o *Orchestrator) Register(c Carrier) {
	o.mu.Lock()
	defer o.mu.Unlock()
	name := c.Name()
	if _, exists := o.carriers[name]; !exists {
		o.order = append(o.order, name)
	}
	o.carriers[name] = c
}

// Names returns the registered carrier names in registration order.
func (o *Orchestrator) Names() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	names := make([]string, len(o.order))
	copy(names, o.order)
	return names
}

// Count returns the number of registered carriers.
func (o *Orchestrator) Count() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.carriers)
}

// GetRate validates req, selects the named carrier (or all registered
// carriers when carrierName is empty) and returns one response per selected
// carrier in registration order. Per carrier, both addresses must pass the
// carrier's own ValidateAddress before its rate call runs. Carriers are
// invoked concurrently; the first failure cancels the rest.
func (o *Orchestrator) GetRate(ctx context.Context, req *RateRequest, carrierName string) ([]*RateResponse, error) {
	if err := ValidateRateRequest(req); err != nil {
		return nil, err
	}

	selected, err := o.selectCarriers(carrierName)
	if err != nil {
		return nil, err
	}

	results := make([]*RateResponse, len(selected))
	g, ctx := errgroup.WithContext(ctx)

	for i, c := range selected {
		i, c := i, c
		g.Go(func() error {
			if err := c.ValidateAddress(ctx, &req.Origin); err != nil {
				return err
			}
			if err := c.ValidateAddress(ctx, &req.Destination); err != nil {
				return err
			}
			resp, err := c.GetRate(ctx, req)
			if err != nil {
				return err
			}
			results[i] = resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (o *Orchestrator) selectCarriers(name string) ([]Carrier, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if name != "" {
		c, ok := o.carriers[name]
		if !ok {
			return nil, NewValidationError(fmt.Sprintf("carrier not found: %s", name))
		}
		return []Carrier{c}, nil
	}

	selected := make([]Carrier, 0, len(o.order))
	for _, n := range o.order {
		selected = append(selected, o.carriers[n])
	}
	return selected, nil
}
