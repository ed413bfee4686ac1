package server

import "time"

// request is a handled http request, logged when it starts and when it completes.
type request struct {
	Name string
	Time time.Time
}

func newRequest(name string) request {
	return request{
		Name: name,
		Time: time.Now(),
	}
}

// block pairs every started request with its completion.
type block struct {
	action   chan request
	reaction chan request
}

func newBlock() block {
	return block{
		action:   make(chan request),
		reaction: make(chan request),
	}
}

// watch logs the duration of each request, until the block is closed.
func (b block) watch(log func(action, reaction request)) {
	for action := range b.action {
		reaction := <-b.reaction
		log(action, reaction)
	}
}
