package coset

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"os"
	"path"
	"time"

	"github.com/coset-dev/coset-server/schema"
	bolt "go.etcd.io/bbolt"
)

const (
	boltAllocSize = 8 * 1024 * 1024
	boltName      = "coset.db"
)

var bucketProbeRecords = []byte("probe-records")

// Store is the local KV store holding the per-oracle probe audit trail.
// Records are appended under <oracleId>/<seq> keys; the oracle row in the
// relational store only carries the latest verified flag.
type Store struct {
	BoltDb *bolt.DB
}

func NewBoltStore(dirPath string) (*Store, error) {
	if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
		return nil, err
	}

	boltDB, err := bolt.Open(path.Join(dirPath, boltName), 0660, &bolt.Options{Timeout: 1 * time.Second, InitialMmapSize: 10e6})
	if err != nil {
		if err == bolt.ErrTimeout {
			return nil, errors.New("cannot obtain database lock, database may be in use by another process")
		}
		return nil, err
	}
	boltDB.AllocSize = boltAllocSize

	kv := &Store{
		BoltDb: boltDB,
	}

	if err := kv.BoltDb.Update(func(tx *bolt.Tx) error {
		return createBuckets(tx, bucketProbeRecords)
	}); err != nil {
		return nil, err
	}

	return kv, nil
}

func createBuckets(tx *bolt.Tx, buckets ...[]byte) error {
	for _, bucket := range buckets {
		if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.BoltDb.Close()
}

func (s *Store) SaveProbeRecord(rec schema.ProbeRecord) error {
	data, err := json.Marshal(&rec)
	if err != nil {
		return err
	}
	return s.BoltDb.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucketProbeRecords)
		seq, err := bkt.NextSequence()
		if err != nil {
			return err
		}
		return bkt.Put(probeKey(rec.OracleId, seq), data)
	})
}

func (s *Store) LoadProbeRecords(oracleId string, limit int) ([]schema.ProbeRecord, error) {
	res := make([]schema.ProbeRecord, 0, limit)
	prefix := []byte(oracleId + "/")
	err := s.BoltDb.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket(bucketProbeRecords).Cursor()
		for k, v := cur.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = cur.Next() {
			rec := schema.ProbeRecord{}
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			res = append(res, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// newest first
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func probeKey(oracleId string, seq uint64) []byte {
	key := make([]byte, 0, len(oracleId)+9)
	key = append(key, oracleId...)
	key = append(key, '/')
	var sk [8]byte
	binary.BigEndian.PutUint64(sk[:], seq)
	return append(key, sk[:]...)
}
