package util

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
)

// Block size used when streaming files from disk for hashing.
const hashBlockSize = 64 * 1024

// MD5File computes the hex MD5 of a file without loading it into memory.
func MD5File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return MD5Reader(f)
}

func MD5Reader(r io.Reader) (string, error) {
	h := md5.New()
	buf := make([]byte, hashBlockSize)
	if _, err := io.CopyBuffer(h, struct{ io.Reader }{r}, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
