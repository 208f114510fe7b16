package coset

import (
	"encoding/json"
	"time"

	"github.com/coset-dev/coset-server/schema"
)

// Lifecycle event types published to kafka when configured.
const (
	EventEndpointVerified = "oracle_endpoint_verified"
	EventOracleDeployed   = "oracle_deployed"
)

type lifecycleEvent struct {
	Event           string `json:"event"`
	OracleId        string `json:"oracleId"`
	Owner           string `json:"owner"`
	Network         string `json:"network,omitempty"`
	TxHash          string `json:"txHash,omitempty"`
	ContractAddress string `json:"contractAddress,omitempty"`
	Timestamp       int64  `json:"timestamp"`
}

// requireVerified guards every stage-2 operation. A Draft oracle always
// surfaces the same error regardless of which component was called.
func requireVerified(oracle *schema.Oracle) error {
	if !oracle.ApiVerified {
		return ErrEndpointNotVerified
	}
	return nil
}

// markVerified performs the Draft->EndpointVerified transition and freezes
// the probed credential. Verifying an already verified oracle re-runs this
// with the same effect; the flag never goes back down.
func (c *Coset) markVerified(oracle *schema.Oracle, credential string) error {
	if err := c.wdb.SetOracleVerified(oracle.ID, credential); err != nil {
		return err
	}
	oracle.ApiVerified = true
	oracle.AccessToken = credential
	c.publishEvent(lifecycleEvent{
		Event:    EventEndpointVerified,
		OracleId: oracle.ID,
		Owner:    oracle.Owner,
	})
	return nil
}

// markDeployed performs the EndpointVerified->Deployed transition. The
// guarded update makes racing finalize calls safe: the first one wins, any
// later call observes the already set contract address and returns it
// without touching the record.
func (c *Coset) markDeployed(oracle *schema.Oracle, network, txHash, contractAddress string) (string, error) {
	ok, err := c.wdb.SetOracleDeployed(oracle.ID, network, txHash, contractAddress)
	if err != nil {
		return "", err
	}
	if !ok {
		cur, err := c.wdb.GetOracle(oracle.Owner, oracle.ID)
		if err != nil {
			return "", err
		}
		if cur.ContractAddress != "" {
			return cur.ContractAddress, nil
		}
		return "", ErrEndpointNotVerified
	}

	oracle.DeployTxHash = txHash
	oracle.ContractAddress = contractAddress
	oracle.Network = network
	metricDeployed(network)
	c.publishEvent(lifecycleEvent{
		Event:           EventOracleDeployed,
		OracleId:        oracle.ID,
		Owner:           oracle.Owner,
		Network:         network,
		TxHash:          txHash,
		ContractAddress: contractAddress,
	})
	return contractAddress, nil
}

func (c *Coset) publishEvent(ev lifecycleEvent) {
	if c.kafka == nil {
		return
	}
	ev.Timestamp = time.Now().Unix()
	body, err := json.Marshal(&ev)
	if err != nil {
		return
	}
	if err := c.kafka.Write(body); err != nil {
		log.Error("kafka.Write(body)", "err", err, "event", ev.Event, "oracleId", ev.OracleId)
	}
}
