package coset

import (
	"encoding/json"
	"time"

	"github.com/coset-dev/coset-server/schema"
	"github.com/tidwall/gjson"
	"gopkg.in/h2non/gentleman.v2"
	"gopkg.in/h2non/gentleman.v2/plugins/timeout"
)

const probeTimeout = 15 * time.Second

// Probe issues authenticated GETs against owner-declared endpoints. Verify
// carries the test marker so endpoints can tell probe traffic from a billable
// update; Fetch is the live read used when preparing the deployment call.
type Probe struct {
	cli *gentleman.Client
}

func NewProbe() *Probe {
	cli := gentleman.New()
	cli.Use(timeout.Request(probeTimeout))
	return &Probe{cli: cli}
}

func (p *Probe) Verify(url, credential string) ([]byte, error) {
	return p.get(url, credential, true)
}

func (p *Probe) Fetch(url, credential string) ([]byte, error) {
	return p.get(url, credential, false)
}

func (p *Probe) get(url, credential string, testMarker bool) ([]byte, error) {
	req := p.cli.Request().Method("GET").URL(url)
	req.SetHeader("Authorization", "Bearer "+credential)
	if testMarker {
		req.SetQuery("test", "true")
	}

	resp, err := req.Send()
	if err != nil {
		return nil, ErrEndpointUnreachable
	}
	defer resp.Close()

	switch {
	case resp.StatusCode == 401 || resp.StatusCode == 403:
		return nil, ErrEndpointUnauthorized
	case !resp.Ok:
		return nil, ErrEndpointNotOk
	}

	body := resp.Bytes()
	if !gjson.ValidBytes(body) {
		return nil, ErrEndpointNotOk
	}
	return body, nil
}

// VerifyEndpoint runs the endpoint probe for the Draft->EndpointVerified
// transition. The probe is re-runnable: a failure against an already verified
// oracle records the failed attempt but never lowers the verified flag.
func (c *Coset) VerifyEndpoint(owner, oracleId, keyName string) (json.RawMessage, error) {
	oracle, err := c.wdb.GetOracle(owner, oracleId)
	if err != nil {
		return nil, err
	}
	key, err := c.wdb.GetApiKeyByName(owner, keyName)
	if err != nil {
		return nil, err
	}

	payload, err := c.probe.Verify(oracle.Url, key.Secret)
	if err != nil {
		c.recordProbe(oracle.ID, nil, err)
		return nil, err
	}

	if err := c.markVerified(oracle, key.Secret); err != nil {
		log.Error("markVerified(oracle, key.Secret)", "err", err, "oracleId", oracle.ID)
		return nil, err
	}
	c.recordProbe(oracle.ID, payload, nil)
	return payload, nil
}

func (c *Coset) recordProbe(oracleId string, payload []byte, probeErr error) {
	rec := schema.ProbeRecord{
		OracleId:  oracleId,
		Ok:        probeErr == nil,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}
	if probeErr != nil {
		rec.ErrMsg = probeErr.Error()
	}
	metricProbeResult(probeErr == nil)
	if err := c.store.SaveProbeRecord(rec); err != nil {
		log.Error("store.SaveProbeRecord(rec)", "err", err, "oracleId", oracleId)
	}
}
