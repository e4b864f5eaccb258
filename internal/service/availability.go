package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/saludplus/backend/internal/domain"
	"github.com/saludplus/backend/internal/repository"
	"github.com/saludplus/backend/pkg/debounce"
	"github.com/saludplus/backend/pkg/email"
	"github.com/saludplus/backend/pkg/logger"
	"github.com/saludplus/backend/pkg/masker"
	"github.com/saludplus/backend/pkg/phone"
)

// Availability-checked fields.
const (
	FieldEmail = "email"
	FieldPhone = "phone"
)

// availabilityChecker runs debounced, deduplicated uniqueness checks for one
// registration session. Per field, only the most recently scheduled check
// survives; a response for a since-superseded value is discarded by
// comparing against the last requested value. Errors fail open: the field is
// treated as available so a flaky backend never blocks the doctor.
type availabilityChecker struct {
	repo     repository.Doctors
	schedule *debounce.Scheduler
	quiet    time.Duration
	onChange func()

	mu            sync.Mutex
	states        map[string]*domain.FieldAvailability
	lastRequested map[string]string
}

func newAvailabilityChecker(repo repository.Doctors, schedule *debounce.Scheduler, quiet time.Duration, onChange func()) *availabilityChecker {
	return &availabilityChecker{
		repo:     repo,
		schedule: schedule,
		quiet:    quiet,
		onChange: onChange,
		states: map[string]*domain.FieldAvailability{
			FieldEmail: {Status: domain.AvailabilityUnknown},
			FieldPhone: {Status: domain.AvailabilityUnknown},
		},
		lastRequested: make(map[string]string),
	}
}

// State returns a copy of the field's availability state.
func (c *availabilityChecker) State(field string) domain.FieldAvailability {
	c.mu.Lock()
	defer c.mu.Unlock()

	if st, ok := c.states[field]; ok {
		return *st
	}
	return domain.FieldAvailability{Status: domain.AvailabilityUnknown}
}

// OnValueChanged reacts to an edit of a checked field: the state drops back
// to unknown, any pending check is cancelled, and a new one is scheduled
// after the quiet period. Values that fail local format validation, or that
// match the last value actually checked, never reach the backend.
func (c *availabilityChecker) OnValueChanged(field, value string) {
	normalized, formatValid := c.normalize(field, value)

	c.mu.Lock()
	st, ok := c.states[field]
	if !ok {
		c.mu.Unlock()
		return
	}

	if !formatValid {
		st.Status = domain.AvailabilityUnknown
		st.IsChecking = false
		c.mu.Unlock()
		c.schedule.Cancel(c.timerKey(field))
		return
	}

	if st.LastCheckedValue == normalized && st.Status != domain.AvailabilityUnknown {
		// Dedupe: this exact value was already checked.
		c.mu.Unlock()
		return
	}

	st.Status = domain.AvailabilityUnknown
	st.IsChecking = true
	c.lastRequested[field] = normalized
	c.mu.Unlock()

	c.schedule.Schedule(c.timerKey(field), c.quiet, func() {
		c.runCheck(field, normalized)
	})
}

// CheckNow performs the availability lookup immediately, bypassing the
// debounce window. Used by the explicit availability endpoint.
func (c *availabilityChecker) CheckNow(ctx context.Context, field, value string) domain.FieldAvailability {
	normalized, formatValid := c.normalize(field, value)
	if !formatValid {
		return domain.FieldAvailability{Status: domain.AvailabilityUnknown}
	}

	c.mu.Lock()
	c.lastRequested[field] = normalized
	if st, ok := c.states[field]; ok {
		st.IsChecking = true
	}
	c.mu.Unlock()

	c.check(ctx, field, normalized)
	return c.State(field)
}

func (c *availabilityChecker) runCheck(field, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c.check(ctx, field, value)
}

func (c *availabilityChecker) check(ctx context.Context, field, value string) {
	taken, err := c.lookup(ctx, field, value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastRequested[field] != value {
		// A newer value superseded this check while it was in flight.
		return
	}

	st := c.states[field]
	st.IsChecking = false
	st.LastCheckedValue = value

	if err != nil {
		// Fail open: a broken availability backend must not block
		// registration. The duplicate-account risk is accepted and audited.
		st.Status = domain.AvailabilityAvailable
		logger.Audit("registration", "availability_fail_open",
			zap.String("field", field),
			zap.String("value", masker.Digits(value)),
			zap.Error(err))
	} else if taken {
		st.Status = domain.AvailabilityTaken
	} else {
		st.Status = domain.AvailabilityAvailable
	}

	if c.onChange != nil {
		go c.onChange()
	}
}

func (c *availabilityChecker) lookup(ctx context.Context, field, value string) (bool, error) {
	switch field {
	case FieldEmail:
		return c.repo.EmailExists(ctx, value)
	case FieldPhone:
		return c.repo.PhoneExists(ctx, value)
	}
	return false, nil
}

// normalize returns the canonical value sent to the backend and whether the
// raw input passes local format validation.
func (c *availabilityChecker) normalize(field, value string) (string, bool) {
	switch field {
	case FieldEmail:
		v := SanitizeEmail(value)
		return v, email.IsEmailValid(v)
	case FieldPhone:
		n, ok := phone.Normalize(value)
		if !ok || (!phone.IsMobile(n) && !phone.IsLandline(n)) {
			return "", false
		}
		return n, true
	}
	return "", false
}

func (c *availabilityChecker) timerKey(field string) string {
	return "availability:" + field
}
