package dispatch

import (
	"bufio"
	"fmt"
	"io"
)

// ChannelKind selects one of the three output channels §7 names: result
// (command return values), info (progress/log text), mark (markers for
// scripted consumers).
type ChannelKind int

const (
	ChannelResult ChannelKind = iota
	ChannelInfo
	ChannelMark
)

func (k ChannelKind) prefix() byte {
	switch k {
	case ChannelResult:
		return 'R'
	case ChannelInfo:
		return 'I'
	default:
		return 'M'
	}
}

// Channel writes to one of the three output streams, either plain or, when
// PacketOutput is set, wrapped in xorriso's packet-output framing
// (`R:`/`I:`/`M:` plus a mode digit) per §7's "-pkt_output on".
type Channel struct {
	Kind         ChannelKind
	Out          io.Writer
	PacketOutput bool
	Mode         int
}

// WriteLine emits one line to the channel.
func (c *Channel) WriteLine(s string) error {
	w := bufio.NewWriter(c.Out)
	if c.PacketOutput {
		if _, err := fmt.Fprintf(w, "%c:%d:%d:%s\n", c.Kind.prefix(), c.Mode, len(s), s); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return w.Flush()
}
