package controls

import (
	"fmt"
)

// DefaultKeyNames returns the stock key for every action, named the way
// SDL names keys.
func DefaultKeyNames() map[Action]string {
	return map[Action]string{
		TranslateUp:    "W",
		TranslateDown:  "S",
		TranslateLeft:  "A",
		TranslateRight: "D",
		RotateCCW:      "Q",
		RotateCW:       "E",
		ScaleUp:        "R",
		ScaleDown:      "F",
		Quit:           "Escape",
		Screenshot:     "F12",
	}
}

// ResolveKeyNames merges config overrides (action name -> key name) onto
// the defaults. Unknown action names and empty key names are errors.
func ResolveKeyNames(overrides map[string]string) (map[Action]string, error) {
	keys := DefaultKeyNames()
	for name, key := range overrides {
		act, err := ParseAction(name)
		if err != nil {
			return nil, err
		}
		if key == "" {
			return nil, fmt.Errorf("action %s: empty key name", name)
		}
		keys[act] = key
	}
	return keys, nil
}
