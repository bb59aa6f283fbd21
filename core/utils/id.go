package utils

import (
	"strconv"
	"sync/atomic"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

var fallbackSeq atomic.Uint64

func GenerateID() string {
	return GenerateIDWithLength(7)
}

// GenerateIDWithLength falls back to a process-local sequence if the random source fails.
func GenerateIDWithLength(length int) string {
	id, err := gonanoid.Generate(idAlphabet, length)
	if err != nil {
		return "seq" + strconv.FormatUint(fallbackSeq.Add(1), 10)
	}
	return id
}
