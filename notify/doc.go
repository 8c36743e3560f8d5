// Package notify is the fire-and-forget toast channel: any part of the
// system posts an ephemeral message, the display layer renders whatever the
// center currently holds. No priorities, no deduplication, no persistence
// across restarts. Ordering is strictly insertion order.
package notify
