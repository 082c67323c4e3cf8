// Copyright 2026 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/juju/errors"
	"github.com/spf13/viper"
)

// Config is the configuration of batch recommendation jobs.
type Config struct {
	Dataset       DatasetConfig       `mapstructure:"dataset"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Recommend     RecommendConfig     `mapstructure:"recommend"`
	Factorization FactorizationConfig `mapstructure:"factorization"`
	Snapshot      SnapshotConfig      `mapstructure:"snapshot"`
}

// DatasetConfig locates the CSV exports of the interaction log and the article catalog.
type DatasetConfig struct {
	InteractionsPath string `mapstructure:"interactions_path"`
	ArticlesPath     string `mapstructure:"articles_path"`
}

// DatabaseConfig is the configuration of the optional SQL data store. Tables are read
// from the data store instead of CSV files once data_store is set.
type DatabaseConfig struct {
	DataStore   string `mapstructure:"data_store" validate:"omitempty,data_store"`
	TablePrefix string `mapstructure:"table_prefix"`
}

type RecommendConfig struct {
	TopN         int `mapstructure:"top_n" validate:"gt=0"`
	NumRecommend int `mapstructure:"num_recommend" validate:"gt=0"`
	NumNeighbors int `mapstructure:"num_neighbors" validate:"gt=0"`
}

type FactorizationConfig struct {
	TrainSize int `mapstructure:"train_size" validate:"gte=0"`
	MinK      int `mapstructure:"min_k" validate:"gt=0"`
	MaxK      int `mapstructure:"max_k" validate:"gtefield=MinK"`
	StepK     int `mapstructure:"step_k" validate:"gt=0"`
	Jobs      int `mapstructure:"jobs" validate:"gt=0"`
}

// Grid returns latent dimensions MinK, MinK+StepK, ... not exceeding MaxK.
func (c *FactorizationConfig) Grid() []int {
	var grid []int
	for k := c.MinK; k <= c.MaxK; k += c.StepK {
		grid = append(grid, k)
	}
	return grid
}

type SnapshotConfig struct {
	Store string          `mapstructure:"store" validate:"oneof=posix s3 gcs azure"`
	Dir   string          `mapstructure:"dir"`
	Name  string          `mapstructure:"name" validate:"required"`
	S3    S3Config        `mapstructure:"s3"`
	GCS   GCSConfig       `mapstructure:"gcs"`
	Azure AzureBlobConfig `mapstructure:"azure"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Bucket          string `mapstructure:"bucket"`
	Prefix          string `mapstructure:"prefix"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

type GCSConfig struct {
	Bucket          string `mapstructure:"bucket"`
	Prefix          string `mapstructure:"prefix"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

type AzureBlobConfig struct {
	AccountName      string `mapstructure:"account_name"`
	AccountKey       string `mapstructure:"account_key"`
	Endpoint         string `mapstructure:"endpoint"`
	ConnectionString string `mapstructure:"connection_string"`
	Container        string `mapstructure:"container"`
	Prefix           string `mapstructure:"prefix"`
}

func GetDefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			InteractionsPath: "data/user-item-interactions.csv",
			ArticlesPath:     "data/articles_community.csv",
		},
		Recommend: RecommendConfig{
			TopN:         10,
			NumRecommend: 10,
			NumNeighbors: 10,
		},
		Factorization: FactorizationConfig{
			TrainSize: 40000,
			MinK:      10,
			MaxK:      700,
			StepK:     20,
			Jobs:      1,
		},
		Snapshot: SnapshotConfig{
			Store: "posix",
			Dir:   "snapshots",
			Name:  "user_item_matrix.msgpack",
		},
	}
}

func setDefault() {
	defaultConfig := GetDefaultConfig()
	// [dataset]
	viper.SetDefault("dataset.interactions_path", defaultConfig.Dataset.InteractionsPath)
	viper.SetDefault("dataset.articles_path", defaultConfig.Dataset.ArticlesPath)
	// [recommend]
	viper.SetDefault("recommend.top_n", defaultConfig.Recommend.TopN)
	viper.SetDefault("recommend.num_recommend", defaultConfig.Recommend.NumRecommend)
	viper.SetDefault("recommend.num_neighbors", defaultConfig.Recommend.NumNeighbors)
	// [factorization]
	viper.SetDefault("factorization.train_size", defaultConfig.Factorization.TrainSize)
	viper.SetDefault("factorization.min_k", defaultConfig.Factorization.MinK)
	viper.SetDefault("factorization.max_k", defaultConfig.Factorization.MaxK)
	viper.SetDefault("factorization.step_k", defaultConfig.Factorization.StepK)
	viper.SetDefault("factorization.jobs", defaultConfig.Factorization.Jobs)
	// [snapshot]
	viper.SetDefault("snapshot.store", defaultConfig.Snapshot.Store)
	viper.SetDefault("snapshot.dir", defaultConfig.Snapshot.Dir)
	viper.SetDefault("snapshot.name", defaultConfig.Snapshot.Name)
}

type configBinding struct {
	key string
	env string
}

// LoadConfig loads configuration from toml file. An empty path loads defaults and
// environment variables only.
func LoadConfig(path string) (*Config, error) {
	// set default config
	setDefault()

	// bind environment bindings
	bindings := []configBinding{
		{"dataset.interactions_path", "ARTICLEREC_INTERACTIONS_PATH"},
		{"dataset.articles_path", "ARTICLEREC_ARTICLES_PATH"},
		{"database.data_store", "ARTICLEREC_DATA_STORE"},
		{"database.table_prefix", "ARTICLEREC_TABLE_PREFIX"},
		{"factorization.jobs", "ARTICLEREC_FACTORIZATION_JOBS"},
		{"snapshot.store", "ARTICLEREC_SNAPSHOT_STORE"},
		{"snapshot.dir", "ARTICLEREC_SNAPSHOT_DIR"},
		{"snapshot.s3.endpoint", "S3_ENDPOINT"},
		{"snapshot.s3.access_key_id", "S3_ACCESS_KEY_ID"},
		{"snapshot.s3.secret_access_key", "S3_SECRET_ACCESS_KEY"},
		{"snapshot.gcs.credentials_file", "GOOGLE_APPLICATION_CREDENTIALS"},
		{"snapshot.azure.connection_string", "AZURE_STORAGE_CONNECTION_STRING"},
	}
	for _, binding := range bindings {
		if err := viper.BindEnv(binding.key, binding.env); err != nil {
			return nil, errors.Trace(err)
		}
	}

	// load config file
	if path != "" {
		viper.SetConfigType("toml")
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, errors.Trace(err)
		}
	}

	// unmarshal config file
	var conf Config
	if err := viper.Unmarshal(&conf, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, errors.Trace(err)
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &conf, nil
}

func (config *Config) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("data_store", func(fl validator.FieldLevel) bool {
		prefixes := []string{
			"sqlite://",
			"mysql://",
			"postgres://",
			"postgresql://",
		}
		for _, prefix := range prefixes {
			if strings.HasPrefix(fl.Field().String(), prefix) {
				return true
			}
		}
		return false
	}); err != nil {
		return errors.Trace(err)
	}
	return validate.Struct(config)
}
