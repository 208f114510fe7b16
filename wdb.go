package coset

import (
	"errors"
	"path"

	"github.com/coset-dev/coset-server/schema"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Wdb struct {
	Db *gorm.DB
}

func NewMysqlDb(dsn string) *Wdb {
	logLevel := logger.Error
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:          logger.Default.LogMode(logLevel),
		CreateBatchSize: 200,
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect mysql db success")
	return &Wdb{Db: db}
}

func NewSqliteDb(dbDir string) *Wdb {
	db, err := gorm.Open(sqlite.Open(path.Join(dbDir, "coset.sqlite")), &gorm.Config{
		Logger:          logger.Default.LogMode(logger.Error),
		CreateBatchSize: 200,
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect sqlite db success")
	return &Wdb{Db: db}
}

func (w *Wdb) Migrate() error {
	return w.Db.AutoMigrate(&schema.Oracle{}, &schema.ApiKey{}, &schema.FaucetClaim{})
}

func (w *Wdb) Close() {
	sql, err := w.Db.DB()
	if err == nil {
		sql.Close()
	}
}

// oracle

func (w *Wdb) CreateOracle(o *schema.Oracle) error {
	return w.Db.Create(o).Error
}

// GetOracle is owner scoped: a miss on either id or owner surfaces the same
// not-found error, so record existence never leaks across wallets.
func (w *Wdb) GetOracle(owner, id string) (*schema.Oracle, error) {
	o := &schema.Oracle{}
	err := w.Db.Where("id = ? AND owner = ?", id, owner).First(o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, schema.ErrNotFound
	}
	return o, err
}

func (w *Wdb) GetOraclesByOwner(owner string) ([]schema.Oracle, error) {
	res := make([]schema.Oracle, 0, 10)
	err := w.Db.Where("owner = ?", owner).Order("created_at desc").Find(&res).Error
	return res, err
}

// UpdateOracleInfo reads first so that an edit with unchanged values still
// succeeds; mysql reports zero changed rows for those, which must not look
// like a missing record.
func (w *Wdb) UpdateOracleInfo(owner, id, name string, description *string) error {
	o, err := w.GetOracle(owner, id)
	if err != nil {
		return err
	}
	o.Name = name
	if description != nil {
		o.Description = *description
	}
	return w.Db.Save(o).Error
}

// SetOracleVerified freezes the credential and raises the verified flag.
// Re-verification re-runs this; the flag is never lowered.
func (w *Wdb) SetOracleVerified(id, credential string) error {
	return w.Db.Model(&schema.Oracle{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"api_verified": true,
			"access_token": credential,
		}).Error
}

// SetOracleDeployed is the single transition into the terminal stage. The
// predicate keeps racing finalize calls from overwriting each other: only one
// update can match while contract_address is still empty.
func (w *Wdb) SetOracleDeployed(id, network, txHash, contractAddress string) (bool, error) {
	res := w.Db.Model(&schema.Oracle{}).
		Where("id = ? AND api_verified = ? AND contract_address = ?", id, true, "").
		Updates(map[string]interface{}{
			"deploy_tx_hash":   txHash,
			"contract_address": contractAddress,
			"network":          network,
		})
	return res.RowsAffected == 1, res.Error
}

// api keys

func (w *Wdb) InsertApiKey(key *schema.ApiKey) error {
	return w.Db.Create(key).Error
}

func (w *Wdb) GetApiKeyByName(wallet, name string) (*schema.ApiKey, error) {
	k := &schema.ApiKey{}
	err := w.Db.Where("wallet = ? AND name = ?", wallet, name).First(k).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, schema.ErrNotFound
	}
	return k, err
}

func (w *Wdb) GetApiKeyById(wallet, id string) (*schema.ApiKey, error) {
	k := &schema.ApiKey{}
	err := w.Db.Where("id = ? AND wallet = ?", id, wallet).First(k).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, schema.ErrNotFound
	}
	return k, err
}

func (w *Wdb) GetApiKeys(wallet string) ([]schema.ApiKey, error) {
	res := make([]schema.ApiKey, 0, 10)
	err := w.Db.Where("wallet = ?", wallet).Order("created_at desc").Find(&res).Error
	return res, err
}

func (w *Wdb) DeleteApiKey(wallet, id string) error {
	return w.Db.Where("id = ? AND wallet = ?", id, wallet).Delete(&schema.ApiKey{}).Error
}

// CredentialInUse reports whether any oracle of this wallet froze the given
// secret during verification.
func (w *Wdb) CredentialInUse(wallet, secret string) (bool, error) {
	var count int64
	err := w.Db.Model(&schema.Oracle{}).
		Where("owner = ? AND access_token = ?", wallet, secret).Count(&count).Error
	return count > 0, err
}

// faucet

func (w *Wdb) InsertFaucetClaim(claim *schema.FaucetClaim) error {
	return w.Db.Create(claim).Error
}

func (w *Wdb) LastFaucetClaim(wallet, token string) (*schema.FaucetClaim, error) {
	c := &schema.FaucetClaim{}
	err := w.Db.Where("wallet = ? AND token = ?", wallet, token).
		Order("created_at desc").First(c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, schema.ErrNotFound
	}
	return c, err
}
