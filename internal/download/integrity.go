package download

import (
	"os"

	"github.com/vodtools/vodindex/internal/util"
)

// Status classifies an on-disk candidate file against its expected
// size/checksum.
type Status int

const (
	StatusOK Status = iota
	StatusSizeMismatch
	StatusChecksumMismatch
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusSizeMismatch:
		return "size mismatch"
	case StatusChecksumMismatch:
		return "checksum mismatch"
	}
	return "unknown"
}

// CheckFile validates an existing file against the expected size (0 =
// unknown) and MD5 sum (empty = unknown). Checksums are only computed when
// verify is set. When nothing is known, any non-empty file passes; there is
// no way to validate further.
func CheckFile(path string, size int64, md5sum string, verify bool) (Status, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return StatusSizeMismatch, err
	}

	if size > 0 {
		if fi.Size() != size {
			return StatusSizeMismatch, nil
		}
	} else if fi.Size() == 0 {
		return StatusSizeMismatch, nil
	}

	if verify && md5sum != "" {
		sum, err := util.MD5File(path)
		if err != nil {
			return StatusChecksumMismatch, err
		}
		if sum != md5sum {
			return StatusChecksumMismatch, nil
		}
	}
	return StatusOK, nil
}
