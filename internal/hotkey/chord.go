package hotkey

import (
	"errors"
	"fmt"
	"strings"
)

const (
	unknownModifierMessageConstant  = "unknown hotkey modifier"
	unknownKeyMessageConstant       = "unknown hotkey key"
	modifierSeparatorConstant       = "+"
	chordValidationTemplateConstant = "%w: %q"
)

// ErrUnknownModifier indicates a modifier name outside cmd, ctrl, alt, and shift.
var ErrUnknownModifier = errors.New(unknownModifierMessageConstant)

// ErrUnknownKey indicates a key name with no virtual key code.
var ErrUnknownKey = errors.New(unknownKeyMessageConstant)

// Modifier names one chord modifier key.
type Modifier string

const (
	// ModifierCommand is the command (super) key.
	ModifierCommand Modifier = "cmd"
	// ModifierControl is the control key.
	ModifierControl Modifier = "ctrl"
	// ModifierAlternate is the alt (option) key.
	ModifierAlternate Modifier = "alt"
	// ModifierShift is the shift key.
	ModifierShift Modifier = "shift"
)

var canonicalModifierOrder = []Modifier{ModifierCommand, ModifierControl, ModifierAlternate, ModifierShift}

// specialKeyCodes carries the virtual key codes that do not depend on the
// keyboard layout. Aliases such as enter and esc resolve to the same code as
// their canonical name.
var specialKeyCodes = map[string]int{
	"tab":       48,
	"space":     49,
	"return":    36,
	"enter":     36,
	"escape":    53,
	"esc":       53,
	"delete":    51,
	"backspace": 51,
	"up":        126,
	"down":      125,
	"left":      123,
	"right":     124,
	"f1":        122,
	"f2":        120,
	"f3":        99,
	"f4":        118,
	"f5":        96,
	"f6":        97,
	"f7":        98,
	"f8":        100,
	"f9":        101,
	"f10":       109,
	"f11":       103,
	"f12":       111,
}

// characterKeyCodes carries the ANSI-layout virtual key codes for letter and
// digit keys.
var characterKeyCodes = map[string]int{
	"a": 0, "b": 11, "c": 8, "d": 2, "e": 14, "f": 3, "g": 5,
	"h": 4, "i": 34, "j": 38, "k": 40, "l": 37, "m": 46, "n": 45,
	"o": 31, "p": 35, "q": 12, "r": 15, "s": 1, "t": 17, "u": 32,
	"v": 9, "w": 13, "x": 7, "y": 16, "z": 6,
	"0": 29, "1": 18, "2": 19, "3": 20, "4": 21,
	"5": 23, "6": 22, "7": 26, "8": 28, "9": 25,
}

// Chord is a normalized hotkey combination.
type Chord struct {
	Modifiers []Modifier
	KeyName   string
	KeyCode   int
}

// ParseChord resolves a modifier list such as "cmd+ctrl" and a key name such
// as "space" into a normalized chord. Modifier order and casing in the input
// do not matter; the result lists modifiers canonically and names the key in
// lowercase.
func ParseChord(modifierList string, keyName string) (Chord, error) {
	presentModifiers := make(map[Modifier]struct{})
	for _, modifierName := range strings.Split(modifierList, modifierSeparatorConstant) {
		normalizedModifierName := strings.ToLower(strings.TrimSpace(modifierName))
		if len(normalizedModifierName) == 0 {
			continue
		}

		candidateModifier := Modifier(normalizedModifierName)
		if !isKnownModifier(candidateModifier) {
			return Chord{}, fmt.Errorf(chordValidationTemplateConstant, ErrUnknownModifier, normalizedModifierName)
		}
		presentModifiers[candidateModifier] = struct{}{}
	}

	orderedModifiers := make([]Modifier, 0, len(presentModifiers))
	for _, canonicalModifier := range canonicalModifierOrder {
		if _, present := presentModifiers[canonicalModifier]; present {
			orderedModifiers = append(orderedModifiers, canonicalModifier)
		}
	}

	normalizedKeyName := strings.ToLower(strings.TrimSpace(keyName))
	keyCode, resolved := resolveKeyCode(normalizedKeyName)
	if !resolved {
		return Chord{}, fmt.Errorf(chordValidationTemplateConstant, ErrUnknownKey, normalizedKeyName)
	}

	return Chord{Modifiers: orderedModifiers, KeyName: normalizedKeyName, KeyCode: keyCode}, nil
}

// String renders the chord in its canonical cmd+ctrl+key form.
func (chord Chord) String() string {
	chordParts := make([]string, 0, len(chord.Modifiers)+1)
	for _, chordModifier := range chord.Modifiers {
		chordParts = append(chordParts, string(chordModifier))
	}
	chordParts = append(chordParts, chord.KeyName)
	return strings.Join(chordParts, modifierSeparatorConstant)
}

func isKnownModifier(candidateModifier Modifier) bool {
	for _, knownModifier := range canonicalModifierOrder {
		if candidateModifier == knownModifier {
			return true
		}
	}
	return false
}

func resolveKeyCode(normalizedKeyName string) (int, bool) {
	if specialKeyCode, isSpecial := specialKeyCodes[normalizedKeyName]; isSpecial {
		return specialKeyCode, true
	}
	if characterKeyCode, isCharacter := characterKeyCodes[normalizedKeyName]; isCharacter {
		return characterKeyCode, true
	}
	return 0, false
}
