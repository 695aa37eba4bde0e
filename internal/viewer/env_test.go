// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package viewer

import "testing"

func TestBusRelease(t *testing.T) {
	bus := NewBus()
	var widths []int
	release := bus.OnResize(func(w int) { widths = append(widths, w) })

	bus.Resize(320)
	release()
	release()
	bus.Resize(640)

	if len(widths) != 1 || widths[0] != 320 {
		t.Errorf("got %v, want [320]", widths)
	}
	if bus.Listeners() != 0 {
		t.Errorf("listeners: got %d", bus.Listeners())
	}
}
