package passcode

import (
	"context"

	"github.com/dmitrijs2005/passgate/internal/logging"
)

// Authenticator exchanges a passcode for a session and returns the display name.
type Authenticator interface {
	Authenticate(ctx context.Context, passcode string) (string, error)
}

type LabelStore interface {
	SetName(ctx context.Context, name string) error
}

type Navigator interface {
	Navigate(ctx context.Context, target string)
}

// View renders the entry state. FocusSlot and the error indicator are the
// only things a view needs to react to.
type View interface {
	FocusSlot(slot int)
	SetError(visible bool)
}

// Controller drives one Machine for the lifetime of a login view.
type Controller struct {
	machine *Machine
	auth    Authenticator
	labels  LabelStore
	nav     Navigator
	view    View
	logger  logging.Logger
}

func NewController(auth Authenticator, labels LabelStore, nav Navigator, view View, l logging.Logger) *Controller {
	return &Controller{
		machine: NewMachine(),
		auth:    auth,
		labels:  labels,
		nav:     nav,
		view:    view,
		logger:  l.With("module", "passcode"),
	}
}

func (c *Controller) Machine() *Machine { return c.machine }

// Input feeds one typed value into slot and applies the resulting effects.
// A completed passcode is submitted synchronously.
func (c *Controller) Input(ctx context.Context, slot int, value string) {
	c.apply(ctx, c.machine.Input(slot, value))
}

// Type enters value into the focused slot.
func (c *Controller) Type(ctx context.Context, value string) {
	c.Input(ctx, c.machine.Focus(), value)
}

func (c *Controller) Backspace(ctx context.Context) {
	c.apply(ctx, c.machine.Backspace())
}

func (c *Controller) apply(ctx context.Context, effects []Effect) {
	for _, e := range effects {
		switch e.Kind {
		case FocusSlot:
			c.view.FocusSlot(e.Slot)
		case ShowError:
			c.view.SetError(true)
		case ClearError:
			c.view.SetError(false)
		case Submit:
			name, err := c.auth.Authenticate(ctx, e.Passcode)
			if err != nil {
				c.logger.Warn(ctx, "authentication failed", "error", err)
			}
			c.apply(ctx, c.machine.Resolve(name, err))
		case StoreLabel:
			if err := c.labels.SetName(ctx, e.Label); err != nil {
				c.logger.Error(ctx, "store label", "error", err)
			}
		case Navigate:
			c.nav.Navigate(ctx, e.Target)
		}
	}
}
