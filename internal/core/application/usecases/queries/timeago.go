// Package queries contains read-only operations for dashboards, the rider
// board, customer tracking, and rewards. Implements the query side of the
// CQRS architecture: handlers read directly from the database with raw SQL
// and shape results for presentation, bypassing the aggregate model.
package queries

import (
	"fmt"
	"time"
)

// timeAgo renders the elapsed time since t as a human phrase for tracking
// and board views, e.g. "just now", "5 minutes ago", "2 hours ago".
func timeAgo(t, now time.Time) string {
	elapsed := now.Sub(t)

	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < 2*time.Minute:
		return "1 minute ago"
	case elapsed < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(elapsed.Minutes()))
	case elapsed < 2*time.Hour:
		return "1 hour ago"
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(elapsed.Hours()))
	case elapsed < 48*time.Hour:
		return "1 day ago"
	default:
		return fmt.Sprintf("%d days ago", int(elapsed.Hours()/24))
	}
}
