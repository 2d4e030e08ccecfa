// Package notify builds and delivers the desktop notifications that report
// command outcomes.
//
// Payload constructors translate execution results into titled messages with
// bounded lengths; Dispatcher shells out to the platform notifier through the
// command executor and swallows delivery failures, logging them instead.
package notify
