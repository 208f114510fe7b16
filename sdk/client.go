package sdk

import (
	"errors"
	"fmt"

	"github.com/coset-dev/coset-server/schema"
	"gopkg.in/h2non/gentleman.v2"
)

// Client drives the oracle deployment pipeline over the HTTP API. The wallet
// token is the signed login header the server's auth middleware expects.
type Client struct {
	SCli *gentleman.Client

	walletToken string
}

func New(cosetUrl, walletToken string) *Client {
	return &Client{
		SCli:        gentleman.New().URL(cosetUrl),
		walletToken: walletToken,
	}
}

func (c *Client) CreateOracle(req schema.ReqCreateOracle) (*schema.RespCreateOracle, error) {
	r := c.request().Method("POST").Path("/oracle")
	r.JSON(req)
	res := &schema.RespCreateOracle{}
	if err := c.send(r, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) GetOracle(id string) (*schema.Oracle, error) {
	r := c.request().Method("GET").Path(fmt.Sprintf("/oracle/%s", id))
	o := &schema.Oracle{}
	if err := c.send(r, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (c *Client) VerifyEndpoint(id, keyName string) (*schema.RespVerify, error) {
	r := c.request().Method("POST").Path(fmt.Sprintf("/oracle/%s/verify", id))
	r.JSON(schema.ReqVerify{KeyName: keyName})
	res := &schema.RespVerify{}
	if err := c.send(r, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) BuildAuthorization(id, network, token string) (*schema.RespAuthorization, error) {
	r := c.request().Method("GET").Path(fmt.Sprintf("/oracle/%s/deploy/authorization", id))
	r.SetQuery("network", network)
	r.SetQuery("token", token)
	res := &schema.RespAuthorization{}
	if err := c.send(r, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) AcceptSignature(id, network, token string, req schema.ReqSignature) (*schema.RespSignature, error) {
	r := c.request().Method("POST").Path(fmt.Sprintf("/oracle/%s/deploy/signature", id))
	r.SetQuery("network", network)
	r.SetQuery("token", token)
	r.JSON(req)
	res := &schema.RespSignature{}
	if err := c.send(r, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) FinalizeDeployment(id, network, token, txHash string) (*schema.RespDeploy, error) {
	r := c.request().Method("POST").Path(fmt.Sprintf("/oracle/%s/deploy", id))
	r.SetQuery("network", network)
	r.SetQuery("token", token)
	r.JSON(schema.ReqDeploy{Tx: txHash})
	res := &schema.RespDeploy{}
	if err := c.send(r, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) CreateApiKey(name string) (*schema.RespNewKey, error) {
	r := c.request().Method("POST").Path("/keys")
	r.JSON(schema.ReqCreateKey{Name: name})
	res := &schema.RespNewKey{}
	if err := c.send(r, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) ClaimFaucet(network, token string) (*schema.RespFaucet, error) {
	r := c.request().Method("POST").Path("/faucet")
	r.JSON(schema.ReqFaucet{Network: network, Token: token})
	res := &schema.RespFaucet{}
	if err := c.send(r, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) request() *gentleman.Request {
	req := c.SCli.Request()
	req.SetHeader("x-wallet-token", c.walletToken)
	return req
}

func (c *Client) send(req *gentleman.Request, out interface{}) error {
	resp, err := req.Send()
	if err != nil {
		return err
	}
	defer resp.Close()
	if !resp.Ok {
		return errors.New(fmt.Sprintf("resp failed: %s", resp.String()))
	}
	return resp.JSON(out)
}
