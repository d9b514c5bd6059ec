package dispatch

import "sort"

// SortByRank stable-sorts commands by (rank, original position) — the
// §4.9 step 4 "-x" argument-sorting pass (scenario S6). Commands are
// otherwise executed in the order Split produced them.
func SortByRank(commands []Command) {
	sort.SliceStable(commands, func(i, j int) bool {
		return commands[i].Spec.Rank < commands[j].Spec.Rank
	})
}

// MergeDriveSelection folds -dev/-indev/-outdev into a single effective
// drive command: the last of them given, whatever its role, overrides all
// earlier ones (scenario S6: "-dev Y overriding earlier outdev"). It returns
// commands with every earlier -dev/-indev/-outdev removed. Roles are not
// tracked separately, so an -indev followed by an -outdev keeps only the
// -outdev.
func MergeDriveSelection(commands []Command) []Command {
	driveRoles := map[string]bool{"dev": true, "indev": true, "outdev": true}
	lastDriveIdx := -1
	out := make([]Command, 0, len(commands))
	for _, c := range commands {
		if driveRoles[c.Name] {
			lastDriveIdx = len(out)
		}
		out = append(out, c)
	}
	if lastDriveIdx == -1 {
		return out
	}
	// Keep only the last drive-selection command; drop earlier ones.
	final := make([]Command, 0, len(out))
	for i, c := range out {
		if driveRoles[c.Name] && i != lastDriveIdx {
			continue
		}
		final = append(final, c)
	}
	return final
}
