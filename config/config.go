package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	// DebugMode indicates service mode is debug.
	DebugMode = "debug"
	// TestMode indicates service mode is test.
	TestMode = "test"
	// ReleaseMode indicates service mode is release.
	ReleaseMode = "release"
)

type Config struct {
	ServiceName string
	ServiceHost string
	HTTPPort    string

	Environment string // debug, test, release
	Version     string

	JaegerHostPort string

	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDatabase string

	MigrationsPath string

	MinioHost        string
	MinioAccessKeyID string
	MinioSecretKey   string
	MinioImageBucket string

	PostgresMaxConnections int32
}

// Load ...
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found")
	}

	config := Config{}

	config.ServiceName = cast.ToString(getOrReturnDefaultValue("SERVICE_NAME", "catalog_admin_data_service"))
	config.ServiceHost = cast.ToString(getOrReturnDefaultValue("CATALOG_ADMIN_SERVICE_HOST", "localhost"))
	config.HTTPPort = cast.ToString(getOrReturnDefaultValue("CATALOG_ADMIN_HTTP_PORT", ":8204"))

	config.Environment = cast.ToString(getOrReturnDefaultValue("ENVIRONMENT", DebugMode))
	config.Version = cast.ToString(getOrReturnDefaultValue("VERSION", "1.0"))

	config.JaegerHostPort = cast.ToString(getOrReturnDefaultValue("JAEGER_URL", ""))

	config.PostgresHost = cast.ToString(getOrReturnDefaultValue("POSTGRES_HOST", ""))
	config.PostgresPort = cast.ToInt(getOrReturnDefaultValue("POSTGRES_PORT", 5432))
	config.PostgresUser = cast.ToString(getOrReturnDefaultValue("POSTGRES_USER", ""))
	config.PostgresPassword = cast.ToString(getOrReturnDefaultValue("POSTGRES_PASSWORD", ""))
	config.PostgresDatabase = cast.ToString(getOrReturnDefaultValue("POSTGRES_DATABASE", ""))

	config.MigrationsPath = cast.ToString(getOrReturnDefaultValue("MIGRATIONS_PATH", "file://migrations"))

	config.MinioAccessKeyID = cast.ToString(getOrReturnDefaultValue("MINIO_ACCESS_KEY", ""))
	config.MinioSecretKey = cast.ToString(getOrReturnDefaultValue("MINIO_SECRET_KEY", ""))
	config.MinioHost = cast.ToString(getOrReturnDefaultValue("MINIO_ENDPOINT", ""))
	config.MinioImageBucket = cast.ToString(getOrReturnDefaultValue("MINIO_IMAGE_BUCKET", "catalog-images"))

	config.PostgresMaxConnections = cast.ToInt32(getOrReturnDefaultValue("POSTGRES_MAX_CONNECTIONS", 100))

	return config
}

func getOrReturnDefaultValue(key string, defaultValue any) any {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return defaultValue
}
