// Package config 统一配置管理
//
// 配置加载策略：
//  1. 从 .env 加载敏感信息（JWT 密钥、引导管理员凭据）和 APP_ENV
//  2. 根据 APP_ENV 加载对应的 configs/{env}.yaml 配置文件
//  3. 环境变量可覆盖 YAML 配置
//
// 凭据单一数据源：密钥只存在环境变量/.env 中，YAML 不存储任何密钥。
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment 环境类型
type Environment string

const (
	EnvProduction  Environment = "prod"
	EnvTest        Environment = "test"
	EnvDevelopment Environment = "dev"
)

// YAMLConfig YAML 配置文件结构
type YAMLConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	URI  string `yaml:"uri"`  // MongoDB 连接 URI，如 mongodb://localhost:27017
	Name string `yaml:"name"` // 数据库名称
}

// AuthConfig 认证配置
// 注意：JWTSecret 和引导管理员凭据只从环境变量读取，不存储在 YAML 中
type AuthConfig struct {
	TokenTTL time.Duration `yaml:"token_ttl"` // 令牌有效期，默认 24h
}

// Config 应用配置（最终使用的配置）
type Config struct {
	Env       Environment
	APIPort   string
	MongoURI  string
	MongoDB   string
	JWTSecret string
	TokenTTL  time.Duration

	// 引导管理员（可选）：启动时确保该账户存在并持有 admin 角色
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

var configPaths = []string{
	"configs",
	"../configs",
	"../../configs",
	"../../../configs",
}

var envPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"../../../.env",
}

// Load 加载配置
// 1. 加载 .env（敏感信息 + APP_ENV）
// 2. 根据 APP_ENV 加载 configs/{env}.yaml
// 3. 环境变量覆盖
func Load() *Config {
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	env := parseEnv(getEnv("APP_ENV", "dev"))
	yamlCfg := loadYAMLConfig(env)

	cfg := &Config{
		Env:           env,
		APIPort:       getEnv("PORT", yamlCfg.Server.Port),
		MongoURI:      getEnv("MONGODB_URI", yamlCfg.Database.URI),
		MongoDB:       getEnv("MONGO_DB", yamlCfg.Database.Name),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		TokenTTL:      yamlCfg.Auth.TokenTTL,
		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}

	if ttl := getEnv("TOKEN_TTL", ""); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			log.Printf("WARNING: config: invalid TOKEN_TTL %q: %v", ttl, err)
		} else {
			cfg.TokenTTL = d
		}
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}

	return cfg
}

// String 返回脱敏后的配置摘要（日志用）
func (c *Config) String() string {
	return fmt.Sprintf("env=%s port=%s mongo=%s db=%s ttl=%s",
		c.Env, c.APIPort, c.MongoURI, c.MongoDB, c.TokenTTL)
}

// loadYAMLConfig 加载 YAML 配置文件
// 加载顺序：默认值 → {env}.yaml
func loadYAMLConfig(env Environment) *YAMLConfig {
	cfg := &YAMLConfig{
		Server:   ServerConfig{Port: "8080"},
		Database: DatabaseConfig{URI: "mongodb://localhost:27017", Name: "docs_admin"},
		Auth:     AuthConfig{TokenTTL: 24 * time.Hour},
	}

	filename := fmt.Sprintf("%s.yaml", env)
	for _, base := range configPaths {
		path := filepath.Join(base, filename)
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, cfg)
			break
		}
	}

	return cfg
}

func parseEnv(env string) Environment {
	switch strings.ToLower(env) {
	case "prod":
		return EnvProduction
	case "test":
		return EnvTest
	default:
		return EnvDevelopment
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
