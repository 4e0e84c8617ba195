package vacancies

import (
	"context"
	"regexp"
	"strings"

	"github.com/honeycarbs/silver-talent/internal/listing"
	"github.com/honeycarbs/silver-talent/pkg/logging"
)

var alertEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	subscribedMessage = "Successfully subscribed for job alerts!"
	// SubscribeFallback is shown when the subscription fails without a server message
	SubscribeFallback = "Could not subscribe at this moment."
)

// Subscriber registers an address for job alerts
type Subscriber interface {
	Subscribe(ctx context.Context, email string) (string, error)
}

// Subscribe registers email for job alerts from the page
func (p *Page) Subscribe(ctx context.Context, email string) (string, error) {
	return Subscribe(ctx, p.backend, email, p.logger)
}

// Subscribe validates email and registers it. Invalid addresses never reach the backend.
func Subscribe(ctx context.Context, backend Subscriber, email string, logger *logging.Logger) (string, error) {
	logger = logging.OrNop(logger)
	email = strings.TrimSpace(email)
	if email == "" || !alertEmailPattern.MatchString(email) {
		return "", listing.ValidationError{Field: "email", Reason: "Please enter a valid email address."}
	}

	msg, err := backend.Subscribe(ctx, email)
	if err != nil {
		logger.Warn("job alert subscription failed", "err", err)
		return "", err
	}
	if msg == "" {
		msg = subscribedMessage
	}
	logger.Info("job alert subscription created")
	return msg, nil
}
