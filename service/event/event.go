package event

import "time"

// Context identifies which directive of which run produced an event
type Context struct {
	RunID       string `json:"runID"`
	Script      string `json:"script,omitempty"`
	Directive   string `json:"directive,omitempty"`
	Line        int    `json:"line,omitempty"`
	Position    int    `json:"position,omitempty"`
	Service     string `json:"service,omitempty"`
	Method      string `json:"method,omitempty"`
	EventType   string `json:"eventType"`
	TimeTakenMs int    `json:"timeTakenMs,omitempty"`
}

type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata"`
	Data      T                      `json:"data"`
}

func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: time.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
