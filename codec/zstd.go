package codec

import (
	"fmt"
	"io"
	"runtime"

	"github.com/klauspost/compress/zstd"
)

const zstdExt = ".zst"

func newZstdReader(r io.Reader) (*zstd.Decoder, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("codec: open zstd stream: %w", err)
	}
	return dec, nil
}

func newZstdWriter(w io.Writer) (*zstd.Encoder, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(runtime.NumCPU()))
	if err != nil {
		return nil, fmt.Errorf("codec: create zstd stream: %w", err)
	}
	return enc, nil
}
