package coset

import (
	"strings"
	"testing"

	"github.com/coset-dev/coset-server/schema"
	"github.com/stretchr/testify/assert"
)

func TestCreateOracle(t *testing.T) {
	c, _ := newTestCoset(t)

	oracle, err := c.CreateOracle(testWallet, schema.ReqCreateOracle{
		Name:        "weather-station",
		Description: "hourly temperature for downtown",
		Endpoint:    "https://api.example.com/data",
		Price:       0.05,
		Interval:    600,
	})
	assert.NoError(t, err)
	assert.NotEqual(t, "", oracle.ID)
	assert.Equal(t, testWallet, oracle.Owner)
	assert.Equal(t, schema.ProtocolHttps, oracle.Protocol)
	assert.Equal(t, schema.StageDraft, oracle.Stage())
	assert.False(t, oracle.ApiVerified)

	got, err := c.wdb.GetOracle(testWallet, oracle.ID)
	assert.NoError(t, err)
	assert.Equal(t, oracle.Url, got.Url)
}

func TestCreateOracleValidation(t *testing.T) {
	c, _ := newTestCoset(t)

	base := schema.ReqCreateOracle{
		Name:     "weather-station",
		Endpoint: "https://api.example.com/data",
		Price:    0.05,
	}

	bad := base
	bad.Name = "ab"
	_, err := c.CreateOracle(testWallet, bad)
	assert.Error(t, err)

	bad = base
	bad.Name = strings.Repeat("a", 65)
	_, err = c.CreateOracle(testWallet, bad)
	assert.Error(t, err)

	bad = base
	bad.Description = strings.Repeat("a", 1025)
	_, err = c.CreateOracle(testWallet, bad)
	assert.Error(t, err)

	bad = base
	bad.Price = -1
	_, err = c.CreateOracle(testWallet, bad)
	assert.Error(t, err)

	bad = base
	bad.Interval = maxUpdateInterval + 1
	_, err = c.CreateOracle(testWallet, bad)
	assert.Error(t, err)

	// only encrypted endpoints are accepted
	bad = base
	bad.Endpoint = "http://api.example.com/data"
	_, err = c.CreateOracle(testWallet, bad)
	assert.Error(t, err)

	bad = base
	bad.Endpoint = "not a url"
	_, err = c.CreateOracle(testWallet, bad)
	assert.Error(t, err)

	bad = base
	bad.Endpoint = "https://" + strings.Repeat("a", 256) + ".com"
	_, err = c.CreateOracle(testWallet, bad)
	assert.Error(t, err)
}

func TestEditOracle(t *testing.T) {
	c, _ := newTestCoset(t)
	oracle := insertTestOracle(t, c, true, "https://api.example.com/data")

	desc := "updated description"
	got, err := c.EditOracle(testWallet, oracle.ID, schema.ReqEditOracle{Name: "weather-v2", Description: &desc})
	assert.NoError(t, err)
	assert.Equal(t, "weather-v2", got.Name)
	assert.Equal(t, desc, got.Description)
	// editing metadata never touches the pipeline state
	assert.True(t, got.ApiVerified)

	got, err = c.EditOracle(testWallet, oracle.ID, schema.ReqEditOracle{Name: "weather-v3"})
	assert.NoError(t, err)
	assert.Equal(t, "weather-v3", got.Name)
	assert.Equal(t, desc, got.Description)

	_, err = c.EditOracle(testWallet, "no-such-id", schema.ReqEditOracle{Name: "ghost"})
	assert.ErrorIs(t, err, schema.ErrNotFound)
}

// Resubmitting the current values changes no columns; the edit still
// succeeds instead of reporting the record missing.
func TestEditOracleUnchangedValues(t *testing.T) {
	c, _ := newTestCoset(t)
	oracle := insertTestOracle(t, c, false, "https://api.example.com/data")

	got, err := c.EditOracle(testWallet, oracle.ID, schema.ReqEditOracle{Name: oracle.Name})
	assert.NoError(t, err)
	assert.Equal(t, oracle.Name, got.Name)

	got, err = c.EditOracle(testWallet, oracle.ID, schema.ReqEditOracle{Name: oracle.Name})
	assert.NoError(t, err)
	assert.Equal(t, oracle.Name, got.Name)
}
