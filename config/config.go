package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "EJS_CONFIG_FILE"

type consumers struct {
	OrderArchiveGroup string `mapstructure:"order_archive_group"`
}

type topics struct {
	OrderPlaced string `mapstructure:"order_placed"`
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
}

type archive struct {
	HDFSAddrs []string `mapstructure:"hdfs_addrs"`
	HDFSUser  string   `mapstructure:"hdfs_user"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	SQLDB          string     `mapstructure:"sql_db"`
	SnapshotPath   string     `mapstructure:"snapshot_path"`
	Broker         broker     `mapstructure:"broker"`
	Archive        archive    `mapstructure:"archive"`
}

func Load() Config {
	viper.SetDefault("http_server_addr", ":8080")
	viper.SetDefault("snapshot_path", "/var/lib/ejs-market/snapshots")
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	SQLDB=%q
	SnapshotPath=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		OrderPlaced=%q
	Consumers:
		OrderArchiveGroup=%q

	ArchiveConfig:
	HDFSAddrs=%q
	HDFSUser=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.SQLDB,
		c.SnapshotPath,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.OrderPlaced,
		c.Broker.Consumers.OrderArchiveGroup,
		c.Archive.HDFSAddrs,
		c.Archive.HDFSUser,
	)
}
