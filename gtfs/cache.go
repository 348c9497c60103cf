package gtfs

import (
	"bytes"
	"encoding/gob"
	"io"
	"os"

	"github.com/go-faster/errors"
)

// SerializeIndex encodes an Index to bytes using gob encoding.
//
// Thread safety: Safe for concurrent use once the index is fully constructed.
func SerializeIndex(index *Index) ([]byte, error) {
	var buf bytes.Buffer
	if err := SerializeIndexToWriter(index, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializeIndex decodes an Index from bytes using gob encoding.
//
//	index, err := gtfs.DeserializeIndex(data)
//	if err != nil {
//	    // Cache is corrupted or invalid, fetch fresh data
//	    index, _ = gtfs.NewIndexFromBytes(freshZipBytes, log)
//	}
func DeserializeIndex(data []byte) (*Index, error) {
	return DeserializeIndexFromReader(bytes.NewReader(data))
}

// SerializeIndexToFile writes an Index to a file using gob encoding.
func SerializeIndexToFile(index *Index, filepath string) error {
	data, err := SerializeIndex(index)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0o644)
}

// DeserializeIndexFromFile reads an Index from a file using gob encoding.
func DeserializeIndexFromFile(filepath string) (*Index, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "read cache file")
	}
	return DeserializeIndex(data)
}

// SerializeIndexToWriter writes an Index to an io.Writer using gob encoding.
func SerializeIndexToWriter(index *Index, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(index); err != nil {
		return errors.Wrap(err, "encode index")
	}
	return nil
}

// DeserializeIndexFromReader reads an Index from an io.Reader using gob encoding.
func DeserializeIndexFromReader(r io.Reader) (*Index, error) {
	index := NewIndex()
	if err := gob.NewDecoder(r).Decode(index); err != nil {
		return nil, errors.Wrap(err, "decode index")
	}
	index.restoreOffsets()
	return index, nil
}

// restoreOffsets recomputes parsed times from the raw strings. Gob drops
// pointers to zero values, which would lose every 12:00:00.
func (g *Index) restoreOffsets() {
	for trip, sts := range g.StopTimes {
		for i := range sts {
			sts[i].Arrival = parseOffset(sts[i].ArrivalTime)
			sts[i].Departure = parseOffset(sts[i].DepartureTime)
		}
		g.StopTimes[trip] = sts
	}
}
