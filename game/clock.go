package game

// Clock is the frame timing resource the Loop publishes before every Update
// pass. Delta is in seconds.
type Clock struct {
	Delta   float64
	Elapsed float64
	Frame   uint64
}

// KeyEvent is a key press or release published on a world's EventBus. Key
// uses browser key names: "w", "a", "s", "d" and "Shift".
type KeyEvent struct {
	Key     string
	Pressed bool
}

// apply sets the key named by ev on k. Unknown keys are ignored.
func (k *Keys) apply(ev KeyEvent) bool {
	switch ev.Key {
	case "w", "W":
		k.Forward = ev.Pressed
	case "s", "S":
		k.Backward = ev.Pressed
	case "a", "A":
		k.Left = ev.Pressed
	case "d", "D":
		k.Right = ev.Pressed
	case "Shift":
		k.Shift = ev.Pressed
	default:
		return false
	}
	return true
}
