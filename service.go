package coset

import (
	"errors"
	"net/url"

	"github.com/coset-dev/coset-server/schema"
	"github.com/google/uuid"
)

const maxUpdateInterval = 31536000 // one year in seconds

// CreateOracle validates and persists a new draft. Only encrypted endpoints
// are accepted; the protocol check happens here, once, not in the probe.
func (c *Coset) CreateOracle(wallet string, req schema.ReqCreateOracle) (*schema.Oracle, error) {
	if len(req.Name) < 3 || len(req.Name) > 64 {
		return nil, errors.New("name must be 3 to 64 characters")
	}
	if len(req.Description) > 1024 {
		return nil, errors.New("description must be less than 1024 characters")
	}
	if req.Price < 0 {
		return nil, errors.New("price must not be negative")
	}
	if req.Interval < 0 || req.Interval > maxUpdateInterval {
		return nil, errors.New("interval out of range")
	}
	if err := validateEndpoint(req.Endpoint); err != nil {
		return nil, err
	}

	oracle := &schema.Oracle{
		ID:             uuid.NewString(),
		Owner:          wallet,
		Name:           req.Name,
		Description:    req.Description,
		RequestPrice:   req.Price,
		UpdateInterval: req.Interval,
		Protocol:       schema.ProtocolHttps,
		Url:            req.Endpoint,
	}
	if err := c.wdb.CreateOracle(oracle); err != nil {
		return nil, err
	}
	return oracle, nil
}

func validateEndpoint(endpoint string) error {
	if len(endpoint) == 0 || len(endpoint) > 256 {
		return errors.New("endpoint must be 1 to 256 characters")
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return errors.New("endpoint is not a valid url")
	}
	if u.Scheme != schema.ProtocolHttps {
		return errors.New("only https endpoints are allowed")
	}
	return nil
}

func (c *Coset) EditOracle(wallet, id string, req schema.ReqEditOracle) (*schema.Oracle, error) {
	if len(req.Name) < 3 || len(req.Name) > 64 {
		return nil, errors.New("name must be 3 to 64 characters")
	}
	if req.Description != nil && len(*req.Description) > 1024 {
		return nil, errors.New("description must be less than 1024 characters")
	}
	if err := c.wdb.UpdateOracleInfo(wallet, id, req.Name, req.Description); err != nil {
		return nil, err
	}
	return c.wdb.GetOracle(wallet, id)
}
