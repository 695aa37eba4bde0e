// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package viewer

import "sync"

// Environment delivers viewport and color scheme changes. Each subscription
// returns a release func that unsubscribes the listener.
type Environment interface {
	OnResize(fn func(width int)) (release func())
	OnColorScheme(fn func(dark bool)) (release func())
}

// Bus is an in-process Environment. Handlers publish browser reports on it
// and every subscribed viewer receives them.
type Bus struct {
	mu     sync.Mutex
	next   int
	resize map[int]func(int)
	scheme map[int]func(bool)
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		resize: make(map[int]func(int)),
		scheme: make(map[int]func(bool)),
	}
}

// OnResize subscribes fn to viewport width reports.
func (b *Bus) OnResize(fn func(width int)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.resize[id] = fn
	return func() {
		b.mu.Lock()
		delete(b.resize, id)
		b.mu.Unlock()
	}
}

// OnColorScheme subscribes fn to color scheme reports.
func (b *Bus) OnColorScheme(fn func(dark bool)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.scheme[id] = fn
	return func() {
		b.mu.Lock()
		delete(b.scheme, id)
		b.mu.Unlock()
	}
}

// Resize publishes a viewport width.
func (b *Bus) Resize(width int) {
	for _, fn := range b.resizeListeners() {
		fn(width)
	}
}

// ColorScheme publishes a color scheme change.
func (b *Bus) ColorScheme(dark bool) {
	b.mu.Lock()
	fns := make([]func(bool), 0, len(b.scheme))
	for _, fn := range b.scheme {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(dark)
	}
}

// Listeners returns the number of live subscriptions.
func (b *Bus) Listeners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.resize) + len(b.scheme)
}

func (b *Bus) resizeListeners() []func(int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fns := make([]func(int), 0, len(b.resize))
	for _, fn := range b.resize {
		fns = append(fns, fn)
	}
	return fns
}
