package chat

import (
	"errors"

	"routinecraft/internal/search"
)

// ErrEmptySelection is returned by Generate when no products are
// selected. No provider or search call is made in that case.
var ErrEmptySelection = errors.New("select at least one product before generating a routine")

// ErrNoRoutine is returned by FollowUp before a routine has been
// generated for the session.
var ErrNoRoutine = errors.New("generate a routine first, then ask follow-up questions")

// ErrUnknownSession is returned by FollowUp for a session id that was
// never issued.
var ErrUnknownSession = errors.New("unknown session id")

// Reply is the result of a generate or follow-up exchange.
type Reply struct {
	SessionID string          `json:"session_id"`
	Reply     string          `json:"reply"`
	ReplyHTML string          `json:"reply_html"`
	Citations []search.Result `json:"citations"`
}
