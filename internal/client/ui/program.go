package ui

import (
	"context"
	"time"
)

// DefaultInitialDelay precedes the first load.
const DefaultInitialDelay = time.Second

// Quit stops Program.Run.
type Quit struct{}

func (Quit) isMsg() {}

// Option configures a Program.
type Option func(*Program)

// WithInitialDelay overrides DefaultInitialDelay.
func WithInitialDelay(d time.Duration) Option {
	return func(p *Program) { p.initialDelay = d }
}

// WithRenderer is called with every new model, including the initial one.
func WithRenderer(fn func(Model)) Option {
	return func(p *Program) { p.render = fn }
}

// Program owns the model and runs the single update loop. Commands run on
// their own goroutines and report back through the message channel.
type Program struct {
	backend      Backend
	initialDelay time.Duration
	render       func(Model)

	msgs chan Msg
	done chan struct{}
}

// NewProgram creates a program over b.
func NewProgram(b Backend, opts ...Option) *Program {
	p := &Program{
		backend:      b,
		initialDelay: DefaultInitialDelay,
		render:       func(Model) {},
		msgs:         make(chan Msg, 16),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Send queues msg for the update loop. It drops msg once Run has returned.
func (p *Program) Send(msg Msg) {
	select {
	case p.msgs <- msg:
	case <-p.done:
	}
}

// Run loops until Quit arrives or ctx ends and returns the final model.
// I/O already in flight is not cancelled; its result is discarded.
func (p *Program) Run(ctx context.Context) Model {
	defer close(p.done)

	m := Model{Loading: true}
	p.render(m)

	start := time.NewTimer(p.initialDelay)
	defer start.Stop()
	go func() {
		select {
		case <-start.C:
			p.Send(LoadRequested{})
		case <-p.done:
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return m
		case msg := <-p.msgs:
			if _, ok := msg.(Quit); ok {
				return m
			}
			var cmd Cmd
			m, cmd = Update(m, msg)
			p.render(m)
			if cmd != nil {
				go p.exec(cmd)
			}
		}
	}
}

func (p *Program) exec(cmd Cmd) {
	p.Send(cmd(context.Background(), p.backend))
}
