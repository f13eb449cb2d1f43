package store

import "context"

type Option func(*Options)

type Options struct {
	Location     string
	Conversation string
	Context      context.Context
}

func WithLocation(loc string) Option {
	return func(o *Options) {
		o.Location = loc
	}
}

func WithConversation(id string) Option {
	return func(o *Options) {
		o.Conversation = id
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Conversation: "default",
		Context:      context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
