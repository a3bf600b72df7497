package renderer

import (
	"bytes"
	"io"
	"os"
	"time"
)

// Now is the current time used in reports.
// SROI_TESTING_NOW ("2006-01-02 15:04:05") overrides it so that reports are reproducible.
func Now() time.Time {
	if s := os.Getenv("SROI_TESTING_NOW"); s != "" {
		t, err := time.Parse("2006-01-02 15:04:05", s)
		if err != nil {
			panic(err)
		}
		return t
	}
	return time.Now()
}

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}
