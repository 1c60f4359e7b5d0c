package config

import "time"

// Chat definition chat_service YAML structure
type Chat struct {
	Port  string `mapstructure:"port"`
	Pprof bool   `mapstructure:"pprof"`

	Store         StoreConfig    `mapstructure:"store"`
	MongoSQL      DatabaseConfig `mapstructure:"mongo"`
	PostgreSQL    DatabaseConfig `mapstructure:"pg"`
	Redis         RedisConfig    `mapstructure:"redis"`
	MemberService ServiceConfig  `mapstructure:"member"`
	Kafka         KafkaConfig    `mapstructure:"kafka"`
	RabbitMQ      RabbitConfig   `mapstructure:"rabbitmq"`
	Realtime      RealtimeConfig `mapstructure:"realtime"`
	Auth          AuthConfig     `mapstructure:"auth"`
}

// StoreDriver message store backend
type StoreDriver string

const (
	// StoreMongo message store on mongo (default)
	StoreMongo StoreDriver = "mongo"
	// StorePostgres message store on postgreSQL
	StorePostgres StoreDriver = "postgres"
)

// StoreConfig definition message store selection
type StoreConfig struct {
	Driver StoreDriver `mapstructure:"driver"`
}

// ServiceConfig definition service port & name
type ServiceConfig struct {
	Port    string        `mapstructure:"service_port"`
	Name    string        `mapstructure:"service_name"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Addr grpc dial address
func (s ServiceConfig) Addr() string {
	return s.Name + ":" + s.Port
}

// RedisConfig definition redis setting
type RedisConfig struct {
	// RedisDB presence (last seen) db
	RedisDB int `mapstructure:"redis_db"`
	// SessionDB member service session db
	SessionDB int `mapstructure:"session_db"`
	// LastSeenTTL how long a last seen record lives
	LastSeenTTL time.Duration `mapstructure:"last_seen_ttl"`
}

// DatabaseConfig definition db setting
type DatabaseConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Database      string `mapstructure:"database"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

// KafkaConfig definition message event stream
type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// RabbitConfig definition follow event queue
type RabbitConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	URL           string `mapstructure:"url"`
	Queue         string `mapstructure:"queue"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

// RealtimeConfig websocket & conversation tuning
type RealtimeConfig struct {
	TypingExpiry      time.Duration `mapstructure:"typing_expiry"`
	PingInterval      time.Duration `mapstructure:"ping_interval"`
	SendBuffer        int           `mapstructure:"send_buffer"`
	MaxMessageLength  int           `mapstructure:"max_message_length"`
	MaxProtocolErrors int           `mapstructure:"max_protocol_errors"`
	// FrameTimeout deadline of one inbound frame (store write included) and of connection setup
	FrameTimeout time.Duration `mapstructure:"frame_timeout"`
}

// AuthConfig bearer credential validation
type AuthConfig struct {
	JWTSecret    string `mapstructure:"jwt_secret"`
	CheckSession bool   `mapstructure:"check_session"`
}

// DefaultRealtime fallback values for unset realtime keys
var DefaultRealtime = RealtimeConfig{
	TypingExpiry:      3 * time.Second,
	PingInterval:      30 * time.Second,
	SendBuffer:        256,
	MaxMessageLength:  4096,
	MaxProtocolErrors: 3,
	FrameTimeout:      5 * time.Second,
}

// WithDefaults fill zero values
func (r RealtimeConfig) WithDefaults() RealtimeConfig {
	if r.TypingExpiry <= 0 {
		r.TypingExpiry = DefaultRealtime.TypingExpiry
	}
	if r.PingInterval <= 0 {
		r.PingInterval = DefaultRealtime.PingInterval
	}
	if r.SendBuffer <= 0 {
		r.SendBuffer = DefaultRealtime.SendBuffer
	}
	if r.MaxMessageLength <= 0 {
		r.MaxMessageLength = DefaultRealtime.MaxMessageLength
	}
	if r.MaxProtocolErrors <= 0 {
		r.MaxProtocolErrors = DefaultRealtime.MaxProtocolErrors
	}
	if r.FrameTimeout <= 0 {
		r.FrameTimeout = DefaultRealtime.FrameTimeout
	}
	return r
}
