package server

import "github.com/raysh454/repopulse/internal/logging"

type Config struct {
	// ListenAddr is the HTTP listen address for the dashboard API.
	ListenAddr string `yaml:"listen_addr"`

	// SubscriberBuffer is the channel size handed to each websocket
	// subscriber. Transitions beyond it are dropped for that subscriber.
	SubscriberBuffer int `yaml:"subscriber_buffer"`

	Logger logging.Logger `yaml:"-"`
}

func DefaultConfig() Config {
	return Config{
		ListenAddr:       ":8080",
		SubscriberBuffer: 16,
	}
}
