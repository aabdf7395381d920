// Package scheduler holds the time-driven pieces of the app: a cancellable
// periodic task, a one-second countdown used by the pomodoro timer, and the
// alarm checker that runs on top of a periodic task.
//
// Everything takes a clockwork.Clock so tests can drive time with a fake
// clock.
package scheduler
