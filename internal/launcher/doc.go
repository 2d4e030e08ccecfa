// Package launcher is the composition root of the summon pipeline. Its
// Service takes one line of user input, decides between focusing a known
// application and executing a shell command, records the submission in the
// matching history store, and dispatches a notification describing the
// outcome. Command history is written before the executor runs so slow
// commands appear in recent history immediately.
package launcher
