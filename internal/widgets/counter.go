package widgets

import (
	"fmt"

	"github.com/henri123lemoine/gallery/internal/compose"
	"github.com/henri123lemoine/gallery/internal/debug"
)

// SentText is the counter caption for n notifications.
func SentText(n int) string {
	return fmt.Sprintf("You have sent %d notification", n)
}

func counterView(c *compose.Composer, count int, label string, onClick func()) *compose.Node {
	return compose.CenteredColumn(
		compose.Text(SentText(count)),
		compose.Spacer(1),
		Button(c, "send", label, onClick),
	)
}

// NoRetentionCounter keeps its count in a plain local. Every click
// increments the local and schedules a re-run, which starts from zero
// again: the display never moves off 0.
func NoRetentionCounter(c *compose.Composer, name string) *compose.Node {
	return c.Scope(name, func(c *compose.Composer) *compose.Node {
		count := 0
		return counterView(c, count, "Send Notification", func() {
			count++
			debug.Log("NotificationCounter: button clicked %d", count)
		})
	})
}

// RememberCounter keeps its count for as long as it stays mounted.
func RememberCounter(c *compose.Composer, name string) *compose.Node {
	return c.Scope(name, func(c *compose.Composer) *compose.Node {
		count := compose.Remember(c, "count", zero[int])
		return counterView(c, count.Value(), "Send Notification with state", func() {
			count.Update(inc)
			debug.Log("NotificationCounter: button clicked %d", count.Peek())
		})
	})
}

// SaveableCounter keeps its count across remounts.
func SaveableCounter(c *compose.Composer, name string) *compose.Node {
	return c.Scope(name, func(c *compose.Composer) *compose.Node {
		count := compose.RememberSaveable(c, "count", zero[int])
		return counterView(c, count.Value(), "Send Notification with state", func() {
			count.Update(inc)
			debug.Log("NotificationCounter: button clicked %d", count.Peek())
		})
	})
}

// NotificationCounters stacks the three retention policies.
func NotificationCounters(c *compose.Composer, name string) *compose.Node {
	return c.Scope(name, func(c *compose.Composer) *compose.Node {
		return compose.CenteredColumn(
			NoRetentionCounter(c, "plain"),
			compose.Spacer(2),
			RememberCounter(c, "transient"),
			SaveableCounter(c, "durable"),
		)
	})
}

func zero[T any]() T {
	var v T
	return v
}

func inc(n int) int { return n + 1 }

func not(b bool) bool { return !b }
