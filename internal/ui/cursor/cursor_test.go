package cursor

import "testing"

func TestNew(t *testing.T) {
	c := New(5)
	if c.Pos() != 0 {
		t.Errorf("New() pos = %d, want 0", c.Pos())
	}
	if c.Offset() != 0 {
		t.Errorf("New() offset = %d, want 0", c.Offset())
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name       string
		margin     int
		initial    int
		delta      int
		len        int
		height     int
		wantPos    int
		wantOffset int
	}{
		{
			name:       "move down within bounds no scroll",
			margin:     2,
			initial:    0,
			delta:      1,
			len:        10,
			height:     5,
			wantPos:    1,
			wantOffset: 0,
		},
		{
			name:       "move down triggers scroll with margin",
			margin:     2,
			initial:    0,
			delta:      3,
			len:        10,
			height:     5,
			wantPos:    3,
			wantOffset: 1,
		},
		{
			name:       "move up clamps to 0",
			margin:     2,
			initial:    2,
			delta:      -5,
			len:        10,
			height:     5,
			wantPos:    0,
			wantOffset: 0,
		},
		{
			name:       "move down clamps to len-1",
			margin:     2,
			initial:    5,
			delta:      15,
			len:        10,
			height:     5,
			wantPos:    9,
			wantOffset: 5,
		},
		{
			name:       "move triggers scroll down",
			margin:     2,
			initial:    2,
			delta:      3,
			len:        10,
			height:     5,
			wantPos:    5,
			wantOffset: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.margin)
			c.pos = tt.initial
			c.Move(tt.delta, tt.len, tt.height)
			if c.Pos() != tt.wantPos {
				t.Errorf("Move() pos = %d, want %d", c.Pos(), tt.wantPos)
			}
			if c.Offset() != tt.wantOffset {
				t.Errorf("Move() offset = %d, want %d", c.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestMoveEmptyList(t *testing.T) {
	c := New(2)
	c.pos = 5 // Set to non-zero to verify no change
	c.Move(1, 0, 5)
	if c.Pos() != 5 {
		t.Errorf("Move() on empty list changed pos to %d", c.Pos())
	}
}

func TestJump(t *testing.T) {
	c := New(2)
	c.Jump(5, 10, 5)
	if c.Pos() != 5 {
		t.Errorf("Jump() pos = %d, want 5", c.Pos())
	}

	// Jump beyond bounds
	c.Jump(100, 10, 5)
	if c.Pos() != 9 {
		t.Errorf("Jump() pos = %d, want 9 (clamped)", c.Pos())
	}

	// Jump negative
	c.Jump(-5, 10, 5)
	if c.Pos() != 0 {
		t.Errorf("Jump() pos = %d, want 0 (clamped)", c.Pos())
	}
}

func TestJumpStart(t *testing.T) {
	c := New(2)
	c.pos = 5
	c.offset = 3
	c.JumpStart()
	if c.Pos() != 0 {
		t.Errorf("JumpStart() pos = %d, want 0", c.Pos())
	}
	if c.Offset() != 0 {
		t.Errorf("JumpStart() offset = %d, want 0", c.Offset())
	}
}

func TestJumpEnd(t *testing.T) {
	c := New(2)
	c.JumpEnd(10, 5)
	if c.Pos() != 9 {
		t.Errorf("JumpEnd() pos = %d, want 9", c.Pos())
	}

	// Empty list
	c2 := New(2)
	c2.JumpEnd(0, 5)
	if c2.Pos() != 0 {
		t.Errorf("JumpEnd() on empty list pos = %d, want 0", c2.Pos())
	}
}

func TestEnsureVisible(t *testing.T) {
	tests := []struct {
		name       string
		margin     int
		pos        int
		offset     int
		len        int
		height     int
		wantOffset int
	}{
		{
			name:       "cursor visible no change",
			margin:     0,
			pos:        2,
			offset:     0,
			len:        10,
			height:     5,
			wantOffset: 0,
		},
		{
			name:       "cursor below viewport scrolls down",
			margin:     0,
			pos:        7,
			offset:     0,
			len:        10,
			height:     5,
			wantOffset: 3,
		},
		{
			name:       "cursor above viewport scrolls up",
			margin:     0,
			pos:        1,
			offset:     4,
			len:        10,
			height:     5,
			wantOffset: 1,
		},
		{
			name:       "offset clamps near end of list",
			margin:     0,
			pos:        9,
			offset:     0,
			len:        10,
			height:     5,
			wantOffset: 5,
		},
		{
			name:       "zero height no change",
			margin:     0,
			pos:        7,
			offset:     2,
			len:        10,
			height:     0,
			wantOffset: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.margin)
			c.pos = tt.pos
			c.offset = tt.offset
			c.EnsureVisible(tt.len, tt.height)
			if c.Offset() != tt.wantOffset {
				t.Errorf("EnsureVisible() offset = %d, want %d", c.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestCenter(t *testing.T) {
	c := New(2)
	c.pos = 10
	c.Center(20, 6)
	if c.Offset() != 7 {
		t.Errorf("Center() offset = %d, want 7", c.Offset())
	}

	// Near the start the offset cannot go negative
	c.pos = 1
	c.Center(20, 6)
	if c.Offset() != 0 {
		t.Errorf("Center() near start offset = %d, want 0", c.Offset())
	}

	// Near the end the offset clamps so the viewport stays full
	c.pos = 19
	c.Center(20, 6)
	if c.Offset() != 14 {
		t.Errorf("Center() near end offset = %d, want 14", c.Offset())
	}
}

func TestClampToBounds(t *testing.T) {
	c := New(2)
	c.pos = 8

	// Still in bounds
	if changed := c.ClampToBounds(10); changed {
		t.Error("ClampToBounds(10) reported change for in-bounds cursor")
	}

	// List shrank below cursor
	if changed := c.ClampToBounds(5); !changed {
		t.Error("ClampToBounds(5) should report change")
	}
	if c.Pos() != 4 {
		t.Errorf("ClampToBounds(5) pos = %d, want 4", c.Pos())
	}

	// List emptied
	c.offset = 2
	if changed := c.ClampToBounds(0); !changed {
		t.Error("ClampToBounds(0) should report change")
	}
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("ClampToBounds(0) pos/offset = %d/%d, want 0/0", c.Pos(), c.Offset())
	}
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		name      string
		offset    int
		len       int
		height    int
		wantStart int
		wantEnd   int
	}{
		{"full window", 0, 10, 5, 0, 5},
		{"scrolled window", 3, 10, 5, 3, 8},
		{"window larger than list", 0, 3, 5, 0, 3},
		{"empty list", 0, 0, 5, 0, 0},
		{"zero height", 2, 10, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(2)
			c.offset = tt.offset
			start, end := c.VisibleRange(tt.len, tt.height)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("VisibleRange() = [%d, %d), want [%d, %d)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestHandleKey(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		initial     int
		wantPos     int
		wantHandled bool
	}{
		{"j moves down", "j", 0, 1, true},
		{"down moves down", "down", 0, 1, true},
		{"k moves up", "k", 3, 2, true},
		{"up moves up", "up", 3, 2, true},
		{"g jumps to start", "g", 5, 0, true},
		{"home jumps to start", "home", 5, 0, true},
		{"G jumps to end", "G", 0, 9, true},
		{"end jumps to end", "end", 0, 9, true},
		{"ctrl+d half page down", "ctrl+d", 0, 2, true},
		{"ctrl+u half page up", "ctrl+u", 5, 3, true},
		{"unbound key not handled", "z", 3, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(0)
			c.pos = tt.initial
			handled := c.HandleKey(tt.key, 10, 4)
			if handled != tt.wantHandled {
				t.Errorf("HandleKey(%q) handled = %v, want %v", tt.key, handled, tt.wantHandled)
			}
			if c.Pos() != tt.wantPos {
				t.Errorf("HandleKey(%q) pos = %d, want %d", tt.key, c.Pos(), tt.wantPos)
			}
		})
	}
}

func TestReset(t *testing.T) {
	c := New(2)
	c.pos = 5
	c.offset = 3
	c.Reset()
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("Reset() pos/offset = %d/%d, want 0/0", c.Pos(), c.Offset())
	}
}
