package dispatch

// Arity is a command's argument-count class (§4.9 step 3).
type Arity int

const (
	Arity0 Arity = iota
	Arity1
	Arity2
	Arity3
	Arity4
	ArityN
)

// Rank groups commands into execution phases for the optional sort pass
// (§4.9 step 4): setup -> drive acquisition -> source settings ->
// insertion -> manipulation -> write -> finish.
type Rank int

const (
	RankSetup Rank = iota
	RankDriveAcquisition
	RankSourceSettings
	RankInsertion
	RankManipulation
	RankWrite
	RankFinish
)

// CommandSpec is one entry in the command table (§6.1): canonical name
// (dashes already folded to underscores), arity class, and sort rank.
type CommandSpec struct {
	Name  string
	Arity Arity
	Rank  Rank
}

// DefaultListDelimiter terminates an ArityN argument list absent an
// explicit -list_delimiter override (§4.9).
const DefaultListDelimiter = "--"

// defaultCommandTable is the representative selection from §6.1, grouped
// the same way the table in the spec presents them.
var defaultCommandTable = map[string]CommandSpec{
	"commit":     {"commit", Arity0, RankWrite},
	"toc":        {"toc", Arity0, RankFinish},
	"end":        {"end", Arity0, RankFinish},
	"rollback":   {"rollback", Arity0, RankFinish},
	"version":    {"version", Arity0, RankSetup},
	"print_size": {"print_size", Arity0, RankFinish},
	"help":       {"help", Arity0, RankSetup},

	"dev":        {"dev", Arity1, RankDriveAcquisition},
	"indev":      {"indev", Arity1, RankDriveAcquisition},
	"outdev":     {"outdev", Arity1, RankDriveAcquisition},
	"cd":         {"cd", Arity1, RankManipulation},
	"cdx":        {"cdx", Arity1, RankManipulation},
	"charset":    {"charset", Arity1, RankSetup},
	"volid":      {"volid", Arity1, RankSourceSettings},
	"speed":      {"speed", Arity1, RankSetup},
	"dummy":      {"dummy", Arity1, RankSetup},
	"blank":      {"blank", Arity1, RankDriveAcquisition},
	"format":     {"format", Arity1, RankDriveAcquisition},
	"eject":      {"eject", Arity1, RankFinish},
	"padding":    {"padding", Arity1, RankSetup},
	"hardlinks":  {"hardlinks", Arity1, RankSourceSettings},
	"acl":        {"acl", Arity1, RankSourceSettings},
	"xattr":      {"xattr", Arity1, RankSourceSettings},
	"md5":        {"md5", Arity1, RankSourceSettings},
	"joliet":     {"joliet", Arity1, RankSourceSettings},
	"compliance": {"compliance", Arity1, RankSourceSettings},

	"load":        {"load", Arity2, RankDriveAcquisition},
	"drive_class": {"drive_class", Arity2, RankDriveAcquisition},
	"compare":     {"compare", Arity2, RankManipulation},
	"update":      {"update", Arity2, RankManipulation},
	"jigdo":       {"jigdo", Arity2, RankWrite},
	"setfattr":    {"setfattr", Arity2, RankManipulation},

	"append_partition": {"append_partition", Arity3, RankInsertion},

	"cut_out":     {"cut_out", Arity4, RankInsertion},
	"paste_in":    {"paste_in", Arity4, RankInsertion},
	"mount":       {"mount", Arity4, RankManipulation},
	"extract_cut": {"extract_cut", Arity4, RankManipulation},

	"add":     {"add", ArityN, RankInsertion},
	"map_l":   {"map_l", ArityN, RankInsertion},
	"find":    {"find", ArityN, RankManipulation},
	"rm":      {"rm", ArityN, RankManipulation},
	"chown":   {"chown", ArityN, RankManipulation},
	"chmod":   {"chmod", ArityN, RankManipulation},
	"setfacl": {"setfacl", ArityN, RankManipulation},
	"as":      {"as", ArityN, RankSetup},
	"path_list": {"path_list", ArityN, RankInsertion},
}

// Lookup resolves a canonicalized command name (post StripCommandDashes)
// to its spec, reporting false if it's not in the table.
func Lookup(name string) (CommandSpec, bool) {
	spec, ok := defaultCommandTable[name]
	return spec, ok
}
