package coset

import (
	"testing"

	"github.com/coset-dev/coset-server/schema"
	"github.com/stretchr/testify/assert"
)

func TestProbeRecords(t *testing.T) {
	s, err := NewBoltStore(t.TempDir())
	assert.NoError(t, err)
	defer s.Close()

	for i := 0; i < 3; i++ {
		assert.NoError(t, s.SaveProbeRecord(schema.ProbeRecord{
			OracleId:  "oracle-a",
			Ok:        i == 2,
			Timestamp: int64(1000 + i),
		}))
	}
	assert.NoError(t, s.SaveProbeRecord(schema.ProbeRecord{
		OracleId:  "oracle-b",
		Ok:        true,
		Timestamp: 2000,
	}))

	recs, err := s.LoadProbeRecords("oracle-a", 50)
	assert.NoError(t, err)
	assert.Equal(t, 3, len(recs))
	// newest first
	assert.Equal(t, int64(1002), recs[0].Timestamp)
	assert.True(t, recs[0].Ok)
	assert.Equal(t, int64(1000), recs[2].Timestamp)

	recs, err = s.LoadProbeRecords("oracle-a", 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(recs))
	assert.Equal(t, int64(1002), recs[0].Timestamp)

	recs, err = s.LoadProbeRecords("oracle-b", 50)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(recs))

	recs, err = s.LoadProbeRecords("oracle-c", 50)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(recs))
}
