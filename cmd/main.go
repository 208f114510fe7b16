package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/coset-dev/coset-server"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name: "coset-server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db_dir", Value: "./data/bolt", Usage: "bolt db dir path", EnvVars: []string{"DB_DIR"}},
			&cli.StringFlag{Name: "mysql", Value: "root@tcp(127.0.0.1:3306)/coset?charset=utf8mb4&parseTime=True&loc=Local", Usage: "mysql dsn", EnvVars: []string{"MYSQL"}},
			&cli.StringFlag{Name: "sqlite_dir", Value: "./data/sqlite", Usage: "sqlite db dir path", EnvVars: []string{"SQLITE_DIR"}},
			&cli.BoolFlag{Name: "use_sqlite", Value: false, Usage: "run with sqlite instead of mysql", EnvVars: []string{"USE_SQLITE"}},
			&cli.StringFlag{Name: "signer_key", Usage: "platform wallet private key hex", EnvVars: []string{"SIGNER_KEY"}},
			&cli.StringFlag{Name: "factory", Usage: "oracle factory contract address", EnvVars: []string{"ORACLE_FACTORY_ADDRESS"}},
			&cli.StringFlag{Name: "default_network", Value: "mantle-testnet", EnvVars: []string{"DEFAULT_NETWORK"}},
			&cli.Int64Flag{Name: "gas_price", Value: 20_000_000, Usage: "faucet tx gas price in wei", EnvVars: []string{"GAS_PRICE"}},
			&cli.StringFlag{Name: "kafka_uri", Value: "", Usage: "kafka broker uri, empty disables event export", EnvVars: []string{"KAFKA_URI"}},

			&cli.StringFlag{Name: "port", Value: ":8080", EnvVars: []string{"PORT"}},
		},
		Action: run,
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	s := coset.New(
		c.String("db_dir"), c.String("mysql"), c.String("sqlite_dir"), c.Bool("use_sqlite"),
		c.String("signer_key"), c.String("factory"), c.String("default_network"),
		c.Int64("gas_price"), c.String("kafka_uri"),
	)
	s.Run(c.String("port"))

	<-signals

	s.Close()
	return nil
}
