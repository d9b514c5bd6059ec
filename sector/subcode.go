package sector

// Subchannel fabrication (§4.4): the 96-byte subchannel block for a data
// sector, the lead-in TOC, and the lead-out, built from a 12-byte P..W
// channel layout where only Q (bytes 12..23) carries meaningful content
// here; P and R..W are left zeroed, matching a plain data-disc burn.

const subchannelSize = 96

// QMode selects which Q-channel mode occupies a given sector, rotating
// "every 10th sector carries MCN or ISRC instead of mode 1" per §4.4.
type QMode int

const (
	QModeTrackPosition QMode = 1
	QModeMCN           QMode = 2
	QModeISRC          QMode = 3
)

// SelectQMode returns the Q-channel mode for sector index i (0-based
// within the track), substituting MCN/ISRC every 10th sector when the
// corresponding string is non-empty (§4.4).
func SelectQMode(i int, mcn, isrc string) QMode {
	if i%10 == 9 {
		if isrc != "" {
			return QModeISRC
		}
		if mcn != "" {
			return QModeMCN
		}
	}
	return QModeTrackPosition
}

// subcodeQ builds the 12-byte Q-channel payload (control/adr nibble,
// track, index, relative/absolute MSF or MCN/ISRC text, plus CRC-CCITT)
// and writes it into out[12:24] of a 96-byte subchannel block.
func subcodeQ(out []byte, controlAdr byte, body [9]byte) {
	q := make([]byte, 10)
	q[0] = controlAdr
	copy(q[1:10], body[:])
	crc := CRCCCITT(q)
	out[12] = q[0]
	copy(out[13:22], q[1:10])
	out[22] = byte(crc >> 8)
	out[23] = byte(crc)
}

// SubcodeUser fabricates the subchannel for a user-data sector: mode 1
// (track position) unless SelectQMode substitutes MCN/ISRC.
func SubcodeUser(track, index int, relLBA, absLBA int64, mode QMode) []byte {
	out := make([]byte, subchannelSize)
	controlAdr := byte(0x10 | 0x01) // ADR=1 (position), control: data track
	var body [9]byte
	switch mode {
	case QModeTrackPosition:
		body[0] = byte(track)
		body[1] = byte(index)
		putMSF(body[2:5], relLBA)
		body[5] = 0
		putMSF(body[6:9], absLBA+150)
	default:
		// MCN/ISRC bodies carry BCD-packed catalog text; left zeroed here
		// since no catalog/ISRC source is wired into the encoder yet.
		controlAdr = byte(0x10) | byte(mode)
	}
	subcodeQ(out, controlAdr, body)
	return out
}

// SubcodeTOC fabricates a lead-in TOC subchannel entry for the given
// point/session layout (§4.4, mirrored from mmc.TOCEntry framing).
func SubcodeTOC(point byte, startLBA int64) []byte {
	out := make([]byte, subchannelSize)
	controlAdr := byte(0x10 | 0x01)
	var body [9]byte
	body[0] = point
	putMSF(body[3:6], startLBA+150)
	subcodeQ(out, controlAdr, body)
	return out
}

// SubcodeLeadout fabricates the lead-out subchannel (point 0xA2 framing,
// §4.4), biased by 0xA0 in the sector header per the leadin convention.
func SubcodeLeadout(startLBA int64) []byte {
	return SubcodeTOC(0xA2, startLBA)
}

func putMSF(dst []byte, lba int64) {
	if lba < 0 {
		lba = 0
	}
	m := lba / (60 * 75)
	s := (lba / 75) % 60
	f := lba % 75
	dst[0] = toBCD(byte(m))
	dst[1] = toBCD(byte(s))
	dst[2] = toBCD(byte(f))
}

func toBCD(v byte) byte {
	return ((v / 10) << 4) | (v % 10)
}
