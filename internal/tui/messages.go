package tui

import "time"

// tickMsg drives the progress-feed drain while an operation is active.
type tickMsg time.Time

// noticeExpiredMsg clears the transient status notice.
type noticeExpiredMsg struct{}
