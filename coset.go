package coset

import (
	"math/big"
	"time"

	"github.com/coset-dev/coset-server/cache"
	"github.com/coset-dev/coset-server/common"
	"github.com/coset-dev/coset-server/config"
	"github.com/everFinance/goether"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
)

var log = NewLog("coset")

const authTokenCacheExp = 1 * time.Hour

type Coset struct {
	engine *gin.Engine

	wdb   *Wdb
	store *Store

	registry       *config.Registry
	defaultNetwork string
	chains         map[string]Chain

	signer *goether.Signer
	probe  *Probe

	cache      *Cache
	localCache *cache.Cache
	scheduler  *gocron.Scheduler

	kafka *KWriter
}

func New(
	boltDirPath, mySqlDsn string, sqliteDir string, useSqlite bool,
	signerKey string, factoryAddr string, defaultNetwork string,
	gasPriceWei int64, kafkaUri string,
) *Coset {
	kvDb, err := NewBoltStore(boltDirPath)
	if err != nil {
		panic(err)
	}

	wdb := &Wdb{}
	if useSqlite {
		wdb = NewSqliteDb(sqliteDir)
	} else {
		wdb = NewMysqlDb(mySqlDsn)
	}
	if err = wdb.Migrate(); err != nil {
		panic(err)
	}

	signer, err := goether.NewSigner(signerKey)
	if err != nil {
		panic(err)
	}

	registry := config.DefaultRegistry(factoryAddr)
	if _, ok := registry.Get(defaultNetwork); !ok {
		panic("default network not in registry: " + defaultNetwork)
	}
	chains := make(map[string]Chain, len(registry.Keys()))
	for _, key := range registry.Keys() {
		network, _ := registry.Get(key)
		client, err := NewChainClient(network, big.NewInt(gasPriceWei))
		if err != nil {
			panic(err)
		}
		chains[key] = client
	}

	localCache, err := cache.NewLocalCache(authTokenCacheExp)
	if err != nil {
		panic(err)
	}

	var kw *KWriter
	if kafkaUri != "" {
		kw, err = NewKWriter(OracleEventTopic, kafkaUri)
		if err != nil {
			panic(err)
		}
	}

	return &Coset{
		engine:         gin.Default(),
		wdb:            wdb,
		store:          kvDb,
		registry:       registry,
		defaultNetwork: defaultNetwork,
		chains:         chains,
		signer:         signer,
		probe:          NewProbe(),
		cache:          NewInfoCache(),
		localCache:     localCache,
		scheduler:      gocron.NewScheduler(time.UTC),
		kafka:          kw,
	}
}

func (c *Coset) Run(port string) {
	common.NewMetricServer()
	go c.runAPI(port)
	c.runJobs()
}

func (c *Coset) Close() {
	c.scheduler.Stop()
	for _, ch := range c.chains {
		ch.Close()
	}
	if c.kafka != nil {
		c.kafka.Close()
	}
	c.store.Close()
	c.wdb.Close()
	log.Info("coset server closed")
}

func (c *Coset) chain(networkKey string) (Chain, error) {
	ch, ok := c.chains[networkKey]
	if !ok {
		return nil, ErrUnknownNetwork
	}
	return ch, nil
}
