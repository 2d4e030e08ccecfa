// Package history provides the bounded, deduplicating usage logs behind the
// summon launcher.
//
// It exposes a generic JSON-persisted Store shared by the command and
// application domains, the record types for both, and CommandBuilder for the
// Cobra command that lists recent entries.
package history
