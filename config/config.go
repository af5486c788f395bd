package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DB      DBConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Server  ServerConfig
	Storage StorageConfig
	Risk    RiskConfig
}

type DBConfig struct {
	DBPath string // путь к файлу SQLite
}

type RedisConfig struct {
	Host        string
	Port        string
	Password    string
	DecisionTTL time.Duration
}

type KafkaConfig struct {
	Brokers         []string
	PreconfirmTopic string
	ConsumerGroupID string
}

type ServerConfig struct {
	HTTPPort         int
	GRPCPort         int
	NotificationPort int
}

type StorageConfig struct {
	DocumentsDir   string
	MaxUploadBytes int64
}

// RiskConfig задает пороги для вычисления триггеров
type RiskConfig struct {
	DefaultHighValueThreshold float64
	AnomalyThreshold          float64
	HomeCountry               string
}

func Load() *Config {
	// Загружаем .env файл, если он существует
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		DB: DBConfig{
			DBPath: getEnv("DB_PATH", "./data/preconfirm.db"),
		},
		Redis: RedisConfig{
			Host:        getEnv("REDIS_HOST", "localhost"),
			Port:        getEnv("REDIS_PORT", "6379"),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DecisionTTL: time.Duration(getEnvAsInt("REDIS_DECISION_TTL_SECONDS", 3600)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:         strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			PreconfirmTopic: getEnv("KAFKA_PRECONFIRM_TOPIC", "payments.preconfirm.completed"),
			ConsumerGroupID: getEnv("KAFKA_CONSUMER_GROUP", "preconfirm-notification-group"),
		},
		Server: ServerConfig{
			HTTPPort:         getEnvAsInt("PRECONFIRM_HTTP_PORT", 8080),
			GRPCPort:         getEnvAsInt("GRPC_PORT", 50051),
			NotificationPort: getEnvAsInt("NOTIFICATION_SERVICE_PORT", 8081),
		},
		Storage: StorageConfig{
			DocumentsDir:   getEnv("DOCUMENTS_DIR", "./data/payment-documents"),
			MaxUploadBytes: int64(getEnvAsInt("MAX_UPLOAD_BYTES", 10*1024*1024)),
		},
		Risk: RiskConfig{
			DefaultHighValueThreshold: getEnvAsFloat("RISK_HIGH_VALUE_THRESHOLD", 10000),
			AnomalyThreshold:          getEnvAsFloat("RISK_ANOMALY_THRESHOLD", 0.8),
			HomeCountry:               getEnv("RISK_HOME_COUNTRY", "GB"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
