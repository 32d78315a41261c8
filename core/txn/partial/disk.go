package partial

import (
	"go.dedis.ch/catapult"
	"go.dedis.ch/catapult/core/txn"
	"go.etcd.io/bbolt"
	"golang.org/x/xerrors"
)

var bucketName = []byte("cosignatures")

// DiskStore is a store of the cosignatures in a bbolt database. The value of
// a parent hash is the concatenation of its cosignatures, each being the
// public key followed by the signature.
//
// - implements partial.Store
type DiskStore struct {
	bolt *bbolt.DB
}

// NewDiskStore opens the database at the path, or creates it.
func NewDiskStore(path string) (DiskStore, error) {
	db, err := bbolt.Open(path, 0666, &bbolt.Options{})
	if err != nil {
		return DiskStore{}, xerrors.Errorf("failed to open db: %v", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return DiskStore{}, xerrors.Errorf("failed to create bucket: %v", err)
	}

	return DiskStore{bolt: db}, nil
}

// Add implements partial.Store.
func (s DiskStore) Add(parent txn.Hash, cosig txn.Cosignature) (bool, error) {
	added := false

	err := s.bolt.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName)

		value := bucket.Get(parent[:])

		cosigs, err := decodeCosignatures(value)
		if err != nil {
			return err
		}

		for _, other := range cosigs {
			if other.Signer == cosig.Signer {
				return nil
			}
		}

		next := make([]byte, 0, len(value)+txn.CosignatureSize)
		next = append(next, value...)
		next = append(next, cosig.Signer[:]...)
		next = append(next, cosig.Signature[:]...)

		added = true

		return bucket.Put(parent[:], next)
	})
	if err != nil {
		return false, xerrors.Errorf("failed to update: %w", err)
	}

	return added, nil
}

// Get implements partial.Store.
func (s DiskStore) Get(parent txn.Hash) ([]txn.Cosignature, error) {
	var cosigs []txn.Cosignature

	err := s.bolt.View(func(tx *bbolt.Tx) error {
		var err error
		cosigs, err = decodeCosignatures(tx.Bucket(bucketName).Get(parent[:]))

		return err
	})
	if err != nil {
		return nil, xerrors.Errorf("failed to read: %w", err)
	}

	return cosigs, nil
}

// Delete implements partial.Store.
func (s DiskStore) Delete(parent txn.Hash) error {
	err := s.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Delete(parent[:])
	})
	if err != nil {
		return xerrors.Errorf("failed to delete: %v", err)
	}

	return nil
}

// Close closes the database. Any call after this one returns an error.
func (s DiskStore) Close() error {
	return s.bolt.Close()
}

// decodeCosignatures returns the cosignatures of a value. The values returned
// by bbolt are only valid during the transaction so they are copied.
func decodeCosignatures(value []byte) ([]txn.Cosignature, error) {
	if len(value)%txn.CosignatureSize != 0 {
		return nil, xerrors.Errorf("%d bytes do not make whole cosignatures: %w",
			len(value), catapult.ErrMalformedPayload)
	}

	cosigs := make([]txn.Cosignature, len(value)/txn.CosignatureSize)
	for i := range cosigs {
		chunk := value[i*txn.CosignatureSize:]

		n := copy(cosigs[i].Signer[:], chunk)
		copy(cosigs[i].Signature[:], chunk[n:])
	}

	return cosigs, nil
}
