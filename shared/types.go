package shared

const (
	SQLITE_DRIVER   = "sqlite"
	POSTGRES_DRIVER = "postgres"
)

type ServerConfig struct {
	Rolodex  RolodexConfig  `mapstructure:"rolodex" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
}

type RolodexConfig struct {
	Listener ListenerConfig `mapstructure:"listener" validate:"required"`
}

type ListenerConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
}

type DatabaseConfig struct {
	Driver   string         `mapstructure:"driver" validate:"required,oneof=sqlite postgres"`
	Sqlite   SqliteConfig   `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// SqliteConfig holds the directory the sqlite db file lives in.
// An empty Dir means the config directory of the running server.
type SqliteConfig struct {
	Dir string `mapstructure:"dir"`
}

type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}
