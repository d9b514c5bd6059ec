package transport

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"
)

// SenseError decodes the {key, asc, ascq} triple carried in an 18-byte sense
// buffer, following the mmc.c sense-key switch (§3.2, §4.1).
type SenseError struct {
	Key  byte
	ASC  byte
	ASCQ byte
	Text string
}

func (e *SenseError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("sense %X,%02X,%02X: %s", e.Key, e.ASC, e.ASCQ, e.Text)
	}
	return fmt.Sprintf("sense %X,%02X,%02X", e.Key, e.ASC, e.ASCQ)
}

// DecodeSense extracts (key, asc, ascq) from an 18-byte fixed-format sense
// buffer and looks up descriptive text in the sense code table.
func DecodeSense(sense [18]byte) *SenseError {
	key := sense[2] & 0x0F
	asc := sense[12]
	ascq := sense[13]
	return &SenseError{Key: key, ASC: asc, ASCQ: ascq, Text: LookupSenseText(key, asc, ascq)}
}

// IsInvalidOpcode reports whether a sense triple is the (5, 20, 00) "invalid
// command operation code" condition the design relies on to fall back from
// READ DISC INFORMATION to READ TOC Format 0, and from GET CONFIGURATION to
// the MMC-1 profile guess (§4.3).
func (e *SenseError) IsInvalidOpcode() bool {
	return e.Key == 0x05 && e.ASC == 0x20 && e.ASCQ == 0x00
}

// IsUnitAttention reports whether the sense key is UNIT ATTENTION (0x06),
// the transient condition that the completion polling after FORMAT UNIT,
// SYNCHRONIZE CACHE and CLOSE TRACK/SESSION retries through.
func (e *SenseError) IsUnitAttention() bool {
	return e.Key == 0x06
}

type senseCodeRow struct {
	Key  string `csv:"key"`
	ASC  string `csv:"asc"`
	ASCQ string `csv:"ascq"`
	Text string `csv:"text"`
}

//go:embed sense_codes.csv
var senseCodesRawCSV string

var senseCodeTable map[[3]byte]string

func init() {
	senseCodeTable = make(map[[3]byte]string)
	reader := strings.NewReader(senseCodesRawCSV)
	err := gocsv.UnmarshalToCallback(reader, func(row senseCodeRow) error {
		var key, asc, ascq byte
		_, err := fmt.Sscanf(row.Key, "%x", &key)
		if err != nil {
			return err
		}
		_, err = fmt.Sscanf(row.ASC, "%x", &asc)
		if err != nil {
			return err
		}
		_, err = fmt.Sscanf(row.ASCQ, "%x", &ascq)
		if err != nil {
			return err
		}
		senseCodeTable[[3]byte{key, asc, ascq}] = row.Text
		return nil
	})
	if err != nil {
		panic(err)
	}
}

// LookupSenseText returns the descriptive text for a sense triple, or "" if
// unknown.
func LookupSenseText(key, asc, ascq byte) string {
	return senseCodeTable[[3]byte{key, asc, ascq}]
}
