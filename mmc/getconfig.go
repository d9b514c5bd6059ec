package mmc

import (
	burnerrors "github.com/burnshell/burn/errors"
	"github.com/burnshell/burn/media"
	"github.com/burnshell/burn/transport"
)

const opGetConfiguration = 0x46

const (
	featProfileList  = 0x0000
	featPhysIfStd    = 0x0001
	featLinkSize     = 0x0021
	featBDFormatCaps = 0x0023
	featDVDWriteCaps = 0x002F
)

func buildGetConfigurationCDB(allocLen int) transport.CDB {
	cdb := transport.NewCDB(10, opGetConfiguration)
	cdb[1] = 0x00 // RT=0: all features, current and not
	cdb.PutUint16(7, uint16(allocLen))
	return cdb
}

func getConfigReplyLength(header []byte) int {
	if len(header) < 4 {
		return 0
	}
	return int(transport.Uint32(header, 0)) + 4
}

// physIfNames maps the §4.3 "physical interface standard" nibble to a
// human name.
var physIfNames = map[int]string{
	1: "SCSI", 2: "ATAPI", 3: "FireWire", 4: "FireWire", 6: "FireWire",
	7: "SATA", 8: "USB",
}

// GetConfiguration issues GET CONFIGURATION and fills d.ProfileCode and
// d.Features from the feature descriptors it understands (§4.3). On an
// (5,20,00) invalid-opcode sense it marks the profile as guessed and
// returns the sense error so the caller can fall back per §4.2.
func GetConfiguration(d *media.Drive) burnerrors.DriverError {
	buf, err := ProbeAndFetch(
		d, 2048, transport.DiscoveryTimeoutMS, buildGetConfigurationCDB, getConfigReplyLength)
	if err != nil {
		d.Features.ProfileGuessed = true
		return err
	}

	b := buf.Used()
	if len(b) >= 8 {
		d.ProfileCode = transport.Uint16(b, 6)
	}

	for off := 8; off+4 <= len(b); {
		code := transport.Uint16(b, off)
		length := int(b[off+3])
		descEnd := off + 4 + length
		if descEnd > len(b) {
			break
		}
		payload := b[off+4 : descEnd]
		applyFeature(d, code, b[off], payload)
		off = descEnd
	}

	return nil
}

func applyFeature(d *media.Drive, code uint16, flagsByte byte, payload []byte) {
	switch code {
	case featProfileList:
		for i := 0; i+4 <= len(payload); i += 4 {
			profile := transport.Uint16(payload, i)
			current := payload[i+2]&0x01 != 0
			d.Features.AllProfiles[profile&0xFF] = true
			if current {
				d.ProfileCode = profile
			}
		}
	case featPhysIfStd:
		if len(payload) >= 4 {
			std := int(transport.Uint32(payload, 0))
			d.Features.PhysIfStd = std
			d.Features.PhysIfName = physIfNames[std]
		}
	case featLinkSize:
		d.Features.Has21h = true
		if len(payload) >= 1 {
			d.Features.LinkSize = int(payload[0])
		}
	case featBDFormatCaps:
		d.Features.Has23h = true
		if len(payload) >= 1 {
			d.Features.BDFormatCaps = payload[0]
		}
	case featDVDWriteCaps:
		d.Features.Has2Fh = true
		if len(payload) >= 4 {
			d.Features.WriteCaps2F = payload[3]
			d.Features.BUFE = payload[0]&0x80 != 0
		}
	}
}
