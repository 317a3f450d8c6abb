package segoverlap

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"
	"io/ioutil"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:     {0x1f, 0x9d},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType checks the leading bytes of data against a set of known
// compression signatures. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectDataType(data []byte) DataType {
	if len(data) == 0 {
		return DataTypeInvalid
	}

Outer:
	for dt, sig := range byteCodeSigs {
		if len(data) < len(sig) {
			continue
		}
		for position := range sig {
			if data[position] != sig[position] {
				continue Outer
			}
		}
		return dt
	}

	return DataTypeNoCompression
}

// MaybeDecompressBytes returns data unchanged unless it carries a known
// compression signature, in which case it returns the decompressed contents.
// Zip archives yield their first entry.
func MaybeDecompressBytes(data []byte) ([]byte, error) {
	var r io.Reader
	var err error

	switch DetectDataType(data) {
	case DataTypeGzip:
		r, err = gzip.NewReader(bytes.NewReader(data))
	case DataTypeZip:
		zr := zipstream.NewReader(bytes.NewReader(data))
		if _, err = zr.Next(); err == nil {
			r = zr
		}
	case DataTypeBZip2:
		r = bzip2.NewReader(bytes.NewReader(data))
	case DataTypeXZ:
		r, err = xz.NewReader(bytes.NewReader(data), 0)
	case DataTypeZ:
		r, err = zlib.NewReader(bytes.NewReader(data))
	default:
		return data, nil
	}

	if err != nil {
		return nil, pfx.Err(err)
	}

	out, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}
