// Package savestore persists encoded tinydb documents as named save slots
// inside a single bbolt database file.
//
// The store owns the file and the raw bytes; the codec core stays free of
// I/O. Each slot holds the encoded document plus a small msgpack-encoded
// metadata record (save time, payload size, xxhash checksum), and the
// checksum is verified on every load before the payload is decoded.
package savestore

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"

	"github.com/andreyvit/tinydb"
)

var (
	ErrSlotNotFound = fmt.Errorf("save slot not found")
	ErrCorruptSlot  = fmt.Errorf("corrupted save slot")
)

var (
	payloadsBucket = []byte("payloads")
	metaBucket     = []byte("meta")
)

type Options struct {
	Logger   *slog.Logger // nil discards log output
	ReadOnly bool
	FileMode os.FileMode      // defaults to 0o644
	Now      func() time.Time // defaults to time.Now, overridable in tests
}

// SlotInfo describes one save slot. Stored msgpack-encoded next to the
// payload.
type SlotInfo struct {
	Slot     string    `msgpack:"-"`
	SavedAt  time.Time `msgpack:"t"`
	Size     int64     `msgpack:"s"`
	Checksum uint64    `msgpack:"c"`
}

type Store struct {
	bdb      *bbolt.DB
	logger   *slog.Logger
	now      func() time.Time
	readOnly bool
}

// Open opens or creates the store file at path.
func Open(path string, opts Options) (*Store, error) {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.FileMode == 0 {
		opts.FileMode = 0o644
	}
	bdb, err := bbolt.Open(path, opts.FileMode, &bbolt.Options{ReadOnly: opts.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("savestore: opening %s: %w", path, err)
	}
	if !opts.ReadOnly {
		err = bdb.Update(func(tx *bbolt.Tx) error {
			if _, err := tx.CreateBucketIfNotExists(payloadsBucket); err != nil {
				return err
			}
			_, err := tx.CreateBucketIfNotExists(metaBucket)
			return err
		})
		if err != nil {
			bdb.Close()
			return nil, fmt.Errorf("savestore: initializing %s: %w", path, err)
		}
	}
	opts.Logger.Debug("savestore open", "path", path, "read_only", opts.ReadOnly)
	return &Store{bdb: bdb, logger: opts.Logger, now: opts.Now, readOnly: opts.ReadOnly}, nil
}

func (s *Store) Close() error {
	return s.bdb.Close()
}

// Save encodes doc and writes payload and metadata in a single write
// transaction, replacing any previous content of the slot.
func (s *Store) Save(slot string, doc *tinydb.Document) error {
	if slot == "" {
		return fmt.Errorf("savestore: empty slot name")
	}
	data := doc.EncodeToBuffer()
	info := SlotInfo{
		SavedAt:  s.now().UTC(),
		Size:     int64(len(data)),
		Checksum: xxhash.Sum64(data),
	}
	meta, err := msgpack.Marshal(&info)
	if err != nil {
		return fmt.Errorf("savestore: encoding metadata for slot %q: %w", slot, err)
	}
	err = s.bdb.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(payloadsBucket).Put([]byte(slot), data); err != nil {
			return err
		}
		return tx.Bucket(metaBucket).Put([]byte(slot), meta)
	})
	if err != nil {
		return fmt.Errorf("savestore: saving slot %q: %w", slot, err)
	}
	s.logger.Debug("slot saved", "slot", slot, "size", len(data))
	return nil
}

// Load reads the slot, verifies its size and checksum against the stored
// metadata, and decodes the payload into a fresh document. A payload that
// does not match its metadata fails with ErrCorruptSlot before any decoding
// is attempted.
func (s *Store) Load(slot string) (*tinydb.Document, error) {
	var data []byte
	var info SlotInfo
	err := s.bdb.View(func(tx *bbolt.Tx) error {
		payloads := tx.Bucket(payloadsBucket)
		if payloads == nil {
			return fmt.Errorf("%q: %w", slot, ErrSlotNotFound)
		}
		payload := payloads.Get([]byte(slot))
		if payload == nil {
			return fmt.Errorf("%q: %w", slot, ErrSlotNotFound)
		}
		// Bolt-owned memory is only valid inside the transaction.
		data = append([]byte(nil), payload...)
		meta := tx.Bucket(metaBucket).Get([]byte(slot))
		if meta == nil {
			return fmt.Errorf("%q: metadata missing: %w", slot, ErrCorruptSlot)
		}
		if err := msgpack.Unmarshal(meta, &info); err != nil {
			return fmt.Errorf("%q: decoding metadata: %v: %w", slot, err, ErrCorruptSlot)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if int64(len(data)) != info.Size || xxhash.Sum64(data) != info.Checksum {
		return nil, fmt.Errorf("%q: payload does not match metadata: %w", slot, ErrCorruptSlot)
	}
	doc, err := tinydb.DecodeFromBuffer(data)
	if err != nil {
		return nil, fmt.Errorf("savestore: decoding slot %q: %w", slot, err)
	}
	s.logger.Debug("slot loaded", "slot", slot, "size", len(data))
	return doc, nil
}

// Info returns the metadata of one slot without loading its payload.
func (s *Store) Info(slot string) (SlotInfo, error) {
	var info SlotInfo
	err := s.bdb.View(func(tx *bbolt.Tx) error {
		mb := tx.Bucket(metaBucket)
		if mb == nil {
			return fmt.Errorf("%q: %w", slot, ErrSlotNotFound)
		}
		meta := mb.Get([]byte(slot))
		if meta == nil {
			return fmt.Errorf("%q: %w", slot, ErrSlotNotFound)
		}
		if err := msgpack.Unmarshal(meta, &info); err != nil {
			return fmt.Errorf("%q: decoding metadata: %v: %w", slot, err, ErrCorruptSlot)
		}
		return nil
	})
	if err != nil {
		return SlotInfo{}, err
	}
	info.Slot = slot
	return info, nil
}

// List returns the metadata of every slot, in slot name order.
func (s *Store) List() ([]SlotInfo, error) {
	var infos []SlotInfo
	err := s.bdb.View(func(tx *bbolt.Tx) error {
		mb := tx.Bucket(metaBucket)
		if mb == nil {
			return nil
		}
		return mb.ForEach(func(k, v []byte) error {
			var info SlotInfo
			if err := msgpack.Unmarshal(v, &info); err != nil {
				return fmt.Errorf("%q: decoding metadata: %v: %w", k, err, ErrCorruptSlot)
			}
			info.Slot = string(k)
			infos = append(infos, info)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return infos, nil
}

// Delete removes a slot. Deleting a missing slot is not an error.
func (s *Store) Delete(slot string) error {
	err := s.bdb.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(payloadsBucket).Delete([]byte(slot)); err != nil {
			return err
		}
		return tx.Bucket(metaBucket).Delete([]byte(slot))
	})
	if err != nil {
		return fmt.Errorf("savestore: deleting slot %q: %w", slot, err)
	}
	s.logger.Debug("slot deleted", "slot", slot)
	return nil
}
