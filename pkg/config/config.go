package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	DB     DBConfig
	JWT    JWTConfig
	Cache  CacheConfig
	Rabbit RabbitConfig
	SMTP   SMTPConfig
	Seed   SeedConfig
}

// AppConfig configuración general de la aplicación.
// Name identifica la instancia (api1, api2) detrás del load balancer; se expone en /health.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN construye el connection string de PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// CacheConfig configuración de memcached.
type CacheConfig struct {
	Host       string
	Port       int
	TTLSeconds int
}

// Addr devuelve la dirección del servidor memcached.
func (c CacheConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RabbitConfig configuración del broker de eventos.
type RabbitConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Queue    string
}

// URL devuelve la URL AMQP del broker.
func (c RabbitConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", c.User, c.Password, c.Host, c.Port)
}

// SMTPConfig configuración del relay de correo para notificaciones al dueño del taller.
type SMTPConfig struct {
	Host       string
	Port       int
	User       string
	Password   string
	OwnerEmail string
}

// SeedConfig credenciales del admin inicial (se siembra de forma idempotente al arrancar).
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Todos los valores tienen defaults para desarrollo local.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "taller-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "taller"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", "change-me-in-prod"),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 240),
			Issuer:     getString(v, "JWT_ISSUER", "taller-api"),
		},
		Cache: CacheConfig{
			Host:       getString(v, "MEMCACHED_HOST", "memcached"),
			Port:       getInt(v, "MEMCACHED_PORT", 11211),
			TTLSeconds: getInt(v, "CACHE_TTL_SECONDS", 30),
		},
		Rabbit: RabbitConfig{
			Host:     getString(v, "RABBIT_HOST", "rabbitmq"),
			Port:     getInt(v, "RABBIT_PORT", 5672),
			User:     getString(v, "RABBIT_USER", "guest"),
			Password: getString(v, "RABBIT_PASSWORD", "guest"),
			Queue:    getString(v, "RABBIT_QUEUE", "order_status_events"),
		},
		SMTP: SMTPConfig{
			Host:       getString(v, "SMTP_HOST", "localhost"),
			Port:       getInt(v, "SMTP_PORT", 1025),
			User:       getString(v, "SMTP_USER", ""),
			Password:   getString(v, "SMTP_PASSWORD", ""),
			OwnerEmail: getString(v, "OWNER_EMAIL", "owner@taller.local"),
		},
		Seed: SeedConfig{
			AdminEmail:    getString(v, "SEED_ADMIN_EMAIL", "admin@taller.local"),
			AdminPassword: getString(v, "SEED_ADMIN_PASSWORD", "admin12345"),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
