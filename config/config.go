package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath                 = "."
	defaultMaxRequestBodySize   = "100KB"
	defaultNotificationCapacity = 50
	defaultRecentSalesLimit     = 3
	defaultExpiryWindow         = 90 * 24 * time.Hour
	defaultTimezone             = "America/Lima"
	defaultBucketURL            = "mem://"
	defaultSnapshotKey          = "nova-salud-storage.json"
	defaultAccessTTL            = 12 * time.Hour
	defaultWorkerPort           = 8081
	defaultArchivePrefix        = "events"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Store configuration for the in-memory domain store
	Store *StoreConfig `json:"store" yaml:"store"`

	// Snapshot configuration for state persistence
	Snapshot *SnapshotConfig `json:"snapshot" yaml:"snapshot"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// PubSub configuration for event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// Firebase configuration for low stock push alerts
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	// Label configuration for product QR labels
	Label *LabelConfig `json:"label" yaml:"label"`

	// Worker configuration for the event archive consumer
	Worker *WorkerConfig `json:"worker" yaml:"worker"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// StoreConfig defines behaviour of the domain store
type StoreConfig struct {
	// Maximum number of notifications kept, oldest evicted first
	NotificationCapacity int `json:"notificationCapacity" yaml:"notificationCapacity"`

	// Number of sales shown in the dashboard's recent sales list
	RecentSalesLimit int `json:"recentSalesLimit" yaml:"recentSalesLimit"`

	// Products expiring within this window are flagged on the dashboard
	ExpiryWindow time.Duration `json:"expiryWindow" yaml:"expiryWindow"`

	// IANA time zone used when formatting dates
	Timezone string `json:"timezone" yaml:"timezone"`

	// Bootstrap empty collections from the seed dataset on load
	SeedOnEmpty bool `json:"seedOnEmpty" yaml:"seedOnEmpty"`
}

// SnapshotConfig defines where the state tree is persisted
type SnapshotConfig struct {
	// Driver: "blob" for gocloud.dev buckets or "postgres"
	Driver string `json:"driver" yaml:"driver"`

	// Bucket URL for the blob driver, e.g. file:///var/lib/novasalud or mem://
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`

	// Object key (blob) or row key (postgres) of the snapshot
	Key string `json:"key" yaml:"key"`
}

// AuthConfig defines operator authentication
type AuthConfig struct {
	Enabled              bool          `json:"enabled" yaml:"enabled"`
	OperatorName         string        `json:"operatorName" yaml:"operatorName"`
	OperatorPasswordHash string        `json:"operatorPasswordHash" yaml:"operatorPasswordHash"`
	SecretKey            string        `json:"secretKey" yaml:"secretKey"`
	AccessTTL            time.Duration `json:"accessTtl" yaml:"accessTtl"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// FirebaseConfig defines Firebase configuration for push alerts
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
	LowStockTopic   string `json:"lowStockTopic" yaml:"lowStockTopic"`
}

// LabelConfig defines QR label rendering
type LabelConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// WorkerConfig defines the Pub/Sub push consumer that archives store events
type WorkerConfig struct {
	Port int `json:"port" yaml:"port"`

	// Bucket URL the events are archived to
	ArchiveBucketURL string `json:"archiveBucketUrl" yaml:"archiveBucketUrl"`

	// Key prefix of archived events
	ArchivePrefix string `json:"archivePrefix" yaml:"archivePrefix"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Store == nil {
		cfg.Store = &StoreConfig{SeedOnEmpty: true}
	}
	if cfg.Store.NotificationCapacity <= 0 {
		cfg.Store.NotificationCapacity = defaultNotificationCapacity
	}
	if cfg.Store.RecentSalesLimit <= 0 {
		cfg.Store.RecentSalesLimit = defaultRecentSalesLimit
	}
	if cfg.Store.ExpiryWindow <= 0 {
		cfg.Store.ExpiryWindow = defaultExpiryWindow
	}
	if cfg.Store.Timezone == "" {
		cfg.Store.Timezone = defaultTimezone
	}

	if cfg.Snapshot == nil {
		cfg.Snapshot = &SnapshotConfig{}
	}
	if cfg.Snapshot.Driver == "" {
		cfg.Snapshot.Driver = "blob"
	}
	if cfg.Snapshot.BucketURL == "" {
		cfg.Snapshot.BucketURL = defaultBucketURL
	}
	if cfg.Snapshot.Key == "" {
		cfg.Snapshot.Key = defaultSnapshotKey
	}

	if cfg.Auth != nil && cfg.Auth.AccessTTL <= 0 {
		cfg.Auth.AccessTTL = defaultAccessTTL
	}

	if cfg.Worker == nil {
		cfg.Worker = &WorkerConfig{}
	}
	if cfg.Worker.Port <= 0 {
		cfg.Worker.Port = defaultWorkerPort
	}
	if cfg.Worker.ArchiveBucketURL == "" {
		cfg.Worker.ArchiveBucketURL = defaultBucketURL
	}
	if cfg.Worker.ArchivePrefix == "" {
		cfg.Worker.ArchivePrefix = defaultArchivePrefix
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
// Example: POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, POSTGRES_REPLICAS_0_USERNAME, POSTGRES_REPLICAS_0_PASSWORD
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			// No more replicas or incomplete configuration.
			break
		}

		replica := postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		}

		replicas = append(replicas, replica)
	}

	return replicas
}
