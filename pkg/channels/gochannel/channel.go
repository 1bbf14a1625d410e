// Package gochannel provides an in-memory watermill channel for single-process deployments and tests.
package gochannel

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// CreateChannel creates a GoChannel-based publisher and subscriber.
// Events never leave the process, so it needs no external broker.
func CreateChannel(logger watermill.LoggerAdapter) (*gochannel.GoChannel, *gochannel.GoChannel, error) {
	// GoChannel pubsub is the same instance for both publisher and subscriber
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer:            1000,  // Buffer size for output channels
			Persistent:                     false, // Don't persist messages after consumption
			BlockPublishUntilSubscriberAck: false, // Don't block on publish
		},
		logger,
	)

	return pubSub, pubSub, nil
}
