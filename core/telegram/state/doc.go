// Package state provides a lightweight FSM/session manager for Telegram bots.
// Sessions are process-local: they are initialized lazily on the first event
// from a user and are not persisted across restarts.
package state
