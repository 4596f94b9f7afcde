package bookingevents

import "errors"

// ErrPublish an event could not be encoded or written to Kafka
var ErrPublish = errors.New("bookingevents: publish failed")
