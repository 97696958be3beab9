package input

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"
)

// Action is a game-level meaning of a key press
type Action uint8

const (
	ActionNone Action = iota
	ActionFarLeft
	ActionLeft
	ActionRight
	ActionFarRight
	ActionFire   // toggles button0, terminals report no key release
	ActionShield // button1 press
	ActionStart
	ActionQuit
	ActionDebug
)

var actionNames = map[string]Action{
	"far_left":  ActionFarLeft,
	"left":      ActionLeft,
	"right":     ActionRight,
	"far_right": ActionFarRight,
	"fire":      ActionFire,
	"shield":    ActionShield,
	"start":     ActionStart,
	"quit":      ActionQuit,
	"debug":     ActionDebug,
}

// Named special keys accepted in keymap files
var specialKeyNames = map[string]tcell.Key{
	"left":   tcell.KeyLeft,
	"right":  tcell.KeyRight,
	"up":     tcell.KeyUp,
	"down":   tcell.KeyDown,
	"enter":  tcell.KeyEnter,
	"esc":    tcell.KeyEscape,
	"tab":    tcell.KeyTab,
	"ctrl-c": tcell.KeyCtrlC,
	"ctrl-q": tcell.KeyCtrlQ,
	"f1":     tcell.KeyF1,
}

// Rune aliases for keys that can't be bare single-char TOML strings
var runeAliases = map[string]rune{
	"space": ' ',
}

// KeyTable maps keys to actions
type KeyTable struct {
	SpecialKeys map[tcell.Key]Action
	Runes       map[rune]Action
}

// DefaultKeyTable returns the built-in bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Action{
			tcell.KeyLeft:   ActionLeft,
			tcell.KeyRight:  ActionRight,
			tcell.KeyEnter:  ActionStart,
			tcell.KeyEscape: ActionQuit,
			tcell.KeyCtrlC:  ActionQuit,
			tcell.KeyCtrlQ:  ActionQuit,
			tcell.KeyF1:     ActionDebug,
		},
		Runes: map[rune]Action{
			'a': ActionFarLeft,
			's': ActionLeft,
			'd': ActionRight,
			'f': ActionFarRight,
			' ': ActionFire,
			'j': ActionShield,
			'k': ActionShield,
			'q': ActionQuit,
		},
	}
}

// Lookup resolves a key event to an action
func (kt *KeyTable) Lookup(ev *tcell.EventKey) Action {
	if ev.Key() == tcell.KeyRune {
		return kt.Runes[ev.Rune()]
	}
	return kt.SpecialKeys[ev.Key()]
}

// keymapFile is the TOML keymap layout: [keys] action = ["key", ...]
type keymapFile struct {
	Keys map[string][]string `toml:"keys"`
}

// LoadKeyConfig parses TOML keymap data and merges it over the defaults
// Actions listed in the file replace all their default bindings
func LoadKeyConfig(data []byte) (*KeyTable, error) {
	var f keymapFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}

	kt := DefaultKeyTable()
	for name, keys := range f.Keys {
		action, ok := actionNames[name]
		if !ok {
			return nil, fmt.Errorf("keymap: unknown action %q", name)
		}
		kt.unbind(action)
		for _, k := range keys {
			if err := kt.bind(k, action); err != nil {
				return nil, fmt.Errorf("keymap action %q: %w", name, err)
			}
		}
	}
	return kt, nil
}

func (kt *KeyTable) unbind(a Action) {
	for k, v := range kt.SpecialKeys {
		if v == a {
			delete(kt.SpecialKeys, k)
		}
	}
	for r, v := range kt.Runes {
		if v == a {
			delete(kt.Runes, r)
		}
	}
}

func (kt *KeyTable) bind(name string, a Action) error {
	lower := strings.ToLower(name)
	if key, ok := specialKeyNames[lower]; ok {
		kt.SpecialKeys[key] = a
		return nil
	}
	if r, ok := runeAliases[lower]; ok {
		kt.Runes[r] = a
		return nil
	}
	runes := []rune(name)
	if len(runes) != 1 {
		return fmt.Errorf("invalid key name %q", name)
	}
	kt.Runes[runes[0]] = a
	return nil
}

// Keyboard adapts terminal key events to the slider/button sampler
type Keyboard struct {
	table   *KeyTable
	sampler *Sampler

	// button0 latch; only touched by the event goroutine and Reset
	firing bool
}

// NewKeyboard binds a key table to a sampler
func NewKeyboard(table *KeyTable, sampler *Sampler) *Keyboard {
	if table == nil {
		table = DefaultKeyTable()
	}
	return &Keyboard{table: table, sampler: sampler}
}

// HandleKey feeds one key event into the sampler and returns its action
// Slider and button actions are consumed here; the caller handles start, quit and debug
func (k *Keyboard) HandleKey(ev *tcell.EventKey) Action {
	action := k.table.Lookup(ev)
	switch action {
	case ActionFarLeft:
		k.sampler.Touch(PadFarLeft)
	case ActionLeft:
		k.sampler.Touch(PadLeft)
	case ActionRight:
		k.sampler.Touch(PadRight)
	case ActionFarRight:
		k.sampler.Touch(PadFarRight)
	case ActionFire:
		k.firing = !k.firing
		if k.firing {
			k.sampler.PostButton(Button0Down)
		} else {
			k.sampler.PostButton(Button0Up)
		}
	case ActionShield:
		k.sampler.PostButton(Button1Down)
		k.sampler.PostButton(Button1Up)
	}
	return action
}

// Firing reports whether the button0 latch is closed
func (k *Keyboard) Firing() bool {
	return k.firing
}

// Reset opens the button0 latch and clears the sampler
func (k *Keyboard) Reset() {
	k.firing = false
	k.sampler.Reset()
}
