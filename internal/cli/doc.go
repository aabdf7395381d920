// Package cli provides the interactive ProdigySpace command-line client.
//
// It wires the domain services to a line-oriented REPL. While the REPL runs,
// a background watcher compares alarms and reminders with the clock and
// prints notifications, and the pomodoro timer reports finished sessions.
//
// Commands are grouped by domain (todo, task, note, expense, alarm,
// reminder, mood, goal, water, bookmark, sticky, pomo, group) plus the data
// commands export, import, restore, backup, backups and csv. Free text is
// taken from the remaining words of a command; options are given as
// key=value pairs, e.g.
//
//	todo add Read chapter 3 due=2024-05-20 cat=study prio=high
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
