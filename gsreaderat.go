package segoverlap

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

type ReaderAtCloser interface {
	io.Reader
	io.ReaderAt
	io.Closer
}

// MaybeOpenFromGoogleStorage opens gs://bucket/object paths through the
// storage client and everything else from the local filesystem. It also
// returns the size of the file in bytes.
func MaybeOpenFromGoogleStorage(path string, client *storage.Client) (ReaderAtCloser, int64, error) {
	if strings.HasPrefix(path, "gs://") {
		if client == nil {
			return nil, 0, pfx.Err(fmt.Errorf("%s: no Google Storage client was initialized", path))
		}

		// Detect the bucket and the path to the actual file
		pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
		if len(pathParts) != 2 {
			return nil, 0, fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
		}
		bucketName := pathParts[0]
		pathName := pathParts[1]

		handle := client.Bucket(bucketName).Object(pathName)

		wrappedHandle := &GSReaderAtCloser{
			ObjectHandle: handle,
			Context:      context.Background(),
		}

		// Make a hard call to get the filesize
		attrs, err := wrappedHandle.ObjectHandle.Attrs(wrappedHandle.Context)
		if err != nil {
			return nil, 0, pfx.Err(fmt.Errorf("%s: %s", path, err))
		}

		return wrappedHandle, attrs.Size, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	fstat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}

	return f, fstat.Size(), nil
}

// ReadAllFromLocalFileOrGoogleStorage reads the whole file into memory. Image
// decoders swallow read errors, so reading up front is the only way to see
// i/o errors (e.g., from GCSFuse) and retry on them.
func ReadAllFromLocalFileOrGoogleStorage(path string, client *storage.Client) ([]byte, error) {
	f, _, err := MaybeOpenFromGoogleStorage(path, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ioutil.ReadAll(f)
}

// GSReaderAtCloser decorates a Google Storage object handle with Read, ReadAt
// and Close.
type GSReaderAtCloser struct {
	*storage.ObjectHandle
	Context context.Context
	Reader  *storage.Reader
}

func (o *GSReaderAtCloser) Read(p []byte) (n int, err error) {
	if o.Reader == nil {
		o.Reader, err = o.NewReader(o.Context)
		if err != nil {
			return 0, err
		}
	}

	return o.Reader.Read(p)
}

// ReadAt satisfies io.ReaderAt. Note that this is dependent upon making p a
// buffer of the desired length to be read by NewRangeReader.
func (o *GSReaderAtCloser) ReadAt(p []byte, offset int64) (n int, err error) {
	rdr, err := o.NewRangeReader(o.Context, offset, int64(len(p)))
	if err != nil {
		return 0, err
	}
	defer rdr.Close()

	return io.ReadFull(rdr, p)
}

// Close releases the sequential reader, if one was opened.
func (o *GSReaderAtCloser) Close() error {
	if o.Reader == nil {
		return nil
	}

	err := o.Reader.Close()
	o.Reader = nil

	return err
}
