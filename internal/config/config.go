package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Storage     StorageConfig
	Tracing     TracingConfig `mapstructure:"tracing"`
	Redis       RedisConfig
	Progression ProgressionConfig `mapstructure:"progression"`
	CORS        CORSConfig        `mapstructure:"cors"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool `mapstructure:"-"` // 强制执行数据库迁移
	MigrateOnly  bool `mapstructure:"-"` // 仅迁移模式（迁移后退出）
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ProgressionConfig 学业推进引擎的阈值与班级阶梯。
// 主题测验与期末考试使用两条独立的、集中配置的及格线，
// 各调用点一律注入本配置，不得自行定义分数线。
type ProgressionConfig struct {
	TopicPassThreshold int      `mapstructure:"topic_pass_threshold"`
	FinalPassThreshold int      `mapstructure:"final_pass_threshold"`
	MaxFailStreak      int      `mapstructure:"max_fail_streak"`
	ClassLevels        []string `mapstructure:"class_levels"`
	Subjects           []string `mapstructure:"subjects"`
}

// LevelIndex 返回班级在阶梯中的序号，未知班级返回 -1。
func (p *ProgressionConfig) LevelIndex(level string) int {
	for i, l := range p.ClassLevels {
		if l == level {
			return i
		}
	}
	return -1
}

// NextLevel 返回下一班级；已在最高班级时原样返回（封顶不报错）。
func (p *ProgressionConfig) NextLevel(level string) string {
	idx := p.LevelIndex(level)
	if idx == -1 || idx == len(p.ClassLevels)-1 {
		return level
	}
	return p.ClassLevels[idx+1]
}

// LowestLevel 新生和安置测试的起点班级。
func (p *ProgressionConfig) LowestLevel() string {
	return p.ClassLevels[0]
}

func (p *ProgressionConfig) HighestLevel() string {
	return p.ClassLevels[len(p.ClassLevels)-1]
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("INCLUSIVE_EDU")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Storage
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	// 推进引擎默认值：主题测验40分、期末90分及格，连续失败3次触发预警
	viper.SetDefault("progression.topic_pass_threshold", 40)
	viper.SetDefault("progression.final_pass_threshold", 90)
	viper.SetDefault("progression.max_fail_streak", 3)
	viper.SetDefault("progression.class_levels", []string{"Class 1", "Class 2", "Class 3"})
	viper.SetDefault("progression.subjects", []string{"maths", "science"})

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	// 生产环境校验 JWT Secret 强度
	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	if len(cfg.Progression.ClassLevels) == 0 {
		return nil, fmt.Errorf("progression.class_levels must not be empty")
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}
