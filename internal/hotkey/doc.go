// Package hotkey normalizes the launcher's configured hotkey chord into
// modifier names and a virtual key code the popup layer can register.
package hotkey
