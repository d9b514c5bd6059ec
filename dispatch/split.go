package dispatch

import (
	burnerrors "github.com/burnshell/burn/errors"
)

// Command is one parsed command word plus its argument slice, with its
// original position preserved for the stable-sort tie-break (§4.9 step 4).
type Command struct {
	Name     string
	Args     []string
	Spec     CommandSpec
	Position int
}

// Split walks tokens, resolving each non-argument word to a command via
// the arity table and slicing off exactly as many following tokens as its
// arity class calls for (terminating an ArityN list at listDelimiter or
// end of tokens), per §4.9 steps 2-3.
func Split(tokens []string, listDelimiter string) ([]Command, burnerrors.DriverError) {
	if listDelimiter == "" {
		listDelimiter = DefaultListDelimiter
	}
	var commands []Command
	i := 0
	pos := 0
	for i < len(tokens) {
		raw := tokens[i]
		i++
		name := StripCommandDashes(raw)
		spec, ok := Lookup(name)
		if !ok {
			return nil, burnerrors.ErrNotFound.WithMessage("unknown command: " + raw)
		}

		var args []string
		switch spec.Arity {
		case Arity0:
			// no args
		case ArityN:
			for i < len(tokens) && tokens[i] != listDelimiter {
				args = append(args, tokens[i])
				i++
			}
			if i < len(tokens) && tokens[i] == listDelimiter {
				i++
			}
		default:
			want := int(spec.Arity)
			if i+want > len(tokens) {
				return nil, burnerrors.ErrInvalidArgument.WithMessage("not enough arguments for " + raw)
			}
			args = tokens[i : i+want]
			i += want
		}

		commands = append(commands, Command{Name: name, Args: args, Spec: spec, Position: pos})
		pos++
	}
	return commands, nil
}
