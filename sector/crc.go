package sector

// CRC-CCITT (X^16+X^12+X^5+1, init 0) over the Q sub-channel's first 10
// bytes, and the CD-ROM EDC CRC-32 (X^32+X^31+X^4+X^3+X+1, reflected) over
// a Mode-1 sector's first 2064 bytes, both per ECMA-130.

var crcCCITTTable [256]uint16

func init() {
	for i := 0; i < 256; i++ {
		crc := uint16(i) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ 0x1021
			} else {
				crc <<= 1
			}
		}
		crcCCITTTable[i] = crc
	}
}

// CRCCCITT computes the 16-bit CRC used by the subchannel Q-channel's
// final two bytes (§4.4).
func CRCCCITT(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc = (crc << 8) ^ crcCCITTTable[byte(crc>>8)^b]
	}
	return crc
}

var edcTable [256]uint32

func init() {
	for i := 0; i < 256; i++ {
		edc := uint32(i)
		for bit := 0; bit < 8; bit++ {
			if edc&1 != 0 {
				edc = (edc >> 1) ^ 0xD8018001
			} else {
				edc >>= 1
			}
		}
		edcTable[i] = edc
	}
}

// CRC32EDC computes the Mode-1 EDC field over data (§4.4: "CRC-32 EDC over
// first 2064 bytes"), stored little-endian in the sector.
func CRC32EDC(data []byte) uint32 {
	var edc uint32
	for _, b := range data {
		edc = (edc >> 8) ^ edcTable[byte(edc)^b]
	}
	return edc
}
