// Package email delivers outbound mail. Delivery is fire-and-forget from
// the auth flows' point of view: callers inspect Result but never block a
// user on retries.
package email

import "context"

type Message struct {
	To      string
	Subject string
	HTML    string
}

// Result mirrors the delivery outcome. PreviewURL is only populated by
// senders that can surface the rendered mail (the development sender).
type Result struct {
	Success    bool
	PreviewURL string
	Err        error
}

type Sender interface {
	Send(ctx context.Context, msg Message) Result
}
