package service

import "context"

// Gateway is the outbound side of the messaging transport. The relay calls
// Deliver to forward a message and only records correlation state once the
// transport has confirmed delivery by returning the new message identifier.
type Gateway interface {
	// Deliver sends content to a user and returns the transport message id
	// of the delivered copy.
	Deliver(ctx context.Context, toUser int64, content string) (int64, error)

	// Notify sends a service text (confirmations) to a user.
	Notify(ctx context.Context, user int64, text string) error
}
