package playground

// ScrollKeeper preserves the viewport offset across message-list mutations.
//
// Every mutation captures the offset immediately before the update and
// restores it after, so incoming logs do not yank the viewport while the user
// is reading earlier content. When the user has explicitly taken scroll
// control the keeper stands aside and the post-update offset is left alone.
type ScrollKeeper struct {
	captured       int
	hasCapture     bool
	userControlled bool
}

// Capture records the offset immediately before a content update.
func (s *ScrollKeeper) Capture(offset int) {
	s.captured = offset
	s.hasCapture = true
}

// Restore returns the offset to apply after a content update, and whether a
// restoration should happen at all. With no capture, or while the user holds
// scroll control, the current offset is kept.
func (s *ScrollKeeper) Restore(current int) (int, bool) {
	if !s.hasCapture || s.userControlled {
		return current, false
	}
	s.hasCapture = false
	return s.captured, true
}

// NoteUserScroll records a manual scroll. Scrolling away from the bottom
// takes control; returning to the bottom hands it back.
func (s *ScrollKeeper) NoteUserScroll(atBottom bool) {
	s.userControlled = !atBottom
}

// UserControlled reports whether the user currently owns the scroll position.
func (s *ScrollKeeper) UserControlled() bool {
	return s.userControlled
}
