package coset

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/coset-dev/coset-server/schema"
	"github.com/google/uuid"
)

// CreateApiKey issues a fresh credential. The raw secret is returned exactly
// once; listings only ever show the masked form.
func (c *Coset) CreateApiKey(wallet, name string) (string, *schema.ApiKey, error) {
	if len(name) < 3 {
		return "", nil, errors.New("key name must be at least 3 characters")
	}
	if len(name) > 64 {
		return "", nil, errors.New("key name must be less than 64 characters")
	}
	if _, err := c.wdb.GetApiKeyByName(wallet, name); err == nil {
		return "", nil, ErrKeyExist
	} else if !errors.Is(err, schema.ErrNotFound) {
		return "", nil, err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", nil, err
	}
	secret := hex.EncodeToString(raw)

	key := &schema.ApiKey{
		ID:     uuid.NewString(),
		Wallet: wallet,
		Name:   name,
		Secret: secret,
	}
	if err := c.wdb.InsertApiKey(key); err != nil {
		return "", nil, err
	}
	return secret, key, nil
}

func (c *Coset) ListApiKeys(wallet string) ([]schema.RespKey, error) {
	keys, err := c.wdb.GetApiKeys(wallet)
	if err != nil {
		return nil, err
	}
	res := make([]schema.RespKey, 0, len(keys))
	for _, k := range keys {
		res = append(res, serializeKey(&k))
	}
	return res, nil
}

// DeleteApiKey refuses to remove a credential that some oracle froze during
// verification; the owner must re-verify with another key first.
func (c *Coset) DeleteApiKey(wallet, id string) error {
	key, err := c.wdb.GetApiKeyById(wallet, id)
	if err != nil {
		return err
	}
	inUse, err := c.wdb.CredentialInUse(wallet, key.Secret)
	if err != nil {
		return err
	}
	if inUse {
		return ErrKeyInUse
	}
	return c.wdb.DeleteApiKey(wallet, id)
}

func serializeKey(k *schema.ApiKey) schema.RespKey {
	return schema.RespKey{
		Id:        k.ID,
		Name:      k.Name,
		Key:       maskKey(k.Secret),
		CreatedAt: k.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func maskKey(key string) string {
	if len(key) <= 12 {
		return key
	}
	return key[:6] + "..." + key[len(key)-4:]
}
