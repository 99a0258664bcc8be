package mode

import (
	"fmt"
	"strconv"
)

// New dispatches on the user-supplied mode name (the CLI's --mode NAME
// flag; ARGS are the positionals after input and output) to a concrete
// Mode. Currently only
// "kucherov" is implemented, taking its integer S parameter as the sole
// element of args.
func New(name string, args []string) (Mode, error) {
	switch name {
	case "kucherov":
		if len(args) != 1 {
			return nil, fmt.Errorf("mode: kucherov expects exactly one numeric argument (S), got %d", len(args))
		}
		s, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("mode: couldn't parse Kucherov's S parameter: %w", err)
		}
		return NewKucherov(s)
	default:
		return nil, fmt.Errorf("mode: unknown mode %q", name)
	}
}
