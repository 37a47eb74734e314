package core

import (
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	MiB = 1 << 20

	// environments
	EnvDev  = "DEV"
	EnvTest = "TEST"
	EnvQA   = "QA"
	EnvProd = "PROD"
)

type (
	ServerConfig struct {
		Address            string
		Host               string
		DebugHost          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
		RequireAuth        bool
		UploadRateLimit    int
		UploadRateWindow   time.Duration
		BodyLimit          string
	}

	StorageConfig struct {
		VideosDir         string
		PublicPath        string // URL prefix the videos dir is served under
		MaxFilesPerUpload int
		MaxFileSize       int64
		AllowedTypes      []string
	}

	AdminConfig struct {
		Username     string
		PasswordHash string // bcrypt
	}

	DatabaseConfig struct {
		Engine     string
		Host       string
		Port       string
		Name       string
		User       string
		Password   string
		DisableTLS bool
	}

	Config struct {
		Env          string
		Build        string
		AppName      string
		SecretKey    string
		Debug        bool
		TestMode     bool
		RollbarToken string

		// memory | postgres
		ProgressBackend string

		Server   ServerConfig
		Storage  StorageConfig
		Admin    AdminConfig
		Database DatabaseConfig
	}
)

func (db DatabaseConfig) Address() string {
	return net.JoinHostPort(db.Host, db.Port)
}

// MaxFileSizeMB is the upload size limit expressed in whole mebibytes, as shown to users.
func (s StorageConfig) MaxFileSizeMB() int64 {
	return s.MaxFileSize / MiB
}

// NewConfig reads the configuration from the environment and from `config/.env.<env>` if it exists.
// Every key can be overridden with an env var prefixed by the environment name, eg. `PROD_SECRETKEY`.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("build", "develop")
	conf.SetDefault("appName", "Videoteca")
	conf.SetDefault("secretKey", "q1w-7yk)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("progressBackend", "memory")

	conf.SetDefault("server.address", ":8000")
	conf.SetDefault("server.host", "localhost")
	conf.SetDefault("server.debugHost", ":4000")
	conf.SetDefault("server.shutdownTimeout", 10*time.Second)
	conf.SetDefault("server.jwtExpirationDelta", 12*time.Hour)
	conf.SetDefault("server.requireAuth", true)
	conf.SetDefault("server.uploadRateLimit", 30)
	conf.SetDefault("server.uploadRateWindow", time.Minute)
	conf.SetDefault("server.bodyLimit", "3G") // 6 x 500MB + form overhead

	conf.SetDefault("storage.videosDir", filepath.Join("public", "videos"))
	conf.SetDefault("storage.publicPath", "/videos")
	conf.SetDefault("storage.maxFilesPerUpload", 6)
	conf.SetDefault("storage.maxFileSize", int64(500*MiB))
	conf.SetDefault("storage.allowedTypes", []string{"video/mp4"})

	conf.SetDefault("admin.username", "admin")
	conf.SetDefault("admin.passwordHash", "")

	conf.SetDefault("database.engine", "postgres")
	conf.SetDefault("database.host", "localhost")
	conf.SetDefault("database.port", "5432")
	conf.SetDefault("database.name", "videoteca")
	conf.SetDefault("database.user", "videoteca")
	conf.SetDefault("database.password", "")
	conf.SetDefault("database.disableTLS", true)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = EnvDev
	case EnvTest:
		conf.SetDefault("testMode", true)
	case EnvProd:
		conf.SetDefault("debug", false)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:             env,
		Build:           conf.GetString("build"),
		AppName:         conf.GetString("appName"),
		SecretKey:       conf.GetString("secretKey"),
		Debug:           conf.GetBool("debug"),
		TestMode:        conf.GetBool("testMode"),
		RollbarToken:    conf.GetString("rollbarToken"),
		ProgressBackend: conf.GetString("progressBackend"),
		Server: ServerConfig{
			Address:            conf.GetString("server.address"),
			Host:               conf.GetString("server.host"),
			DebugHost:          conf.GetString("server.debugHost"),
			ShutdownTimeout:    conf.GetDuration("server.shutdownTimeout"),
			JWTExpirationDelta: conf.GetDuration("server.jwtExpirationDelta"),
			RequireAuth:        conf.GetBool("server.requireAuth"),
			UploadRateLimit:    conf.GetInt("server.uploadRateLimit"),
			UploadRateWindow:   conf.GetDuration("server.uploadRateWindow"),
			BodyLimit:          conf.GetString("server.bodyLimit"),
		},
		Storage: StorageConfig{
			VideosDir:         conf.GetString("storage.videosDir"),
			PublicPath:        strings.TrimRight(conf.GetString("storage.publicPath"), "/"),
			MaxFilesPerUpload: conf.GetInt("storage.maxFilesPerUpload"),
			MaxFileSize:       conf.GetInt64("storage.maxFileSize"),
			AllowedTypes:      conf.GetStringSlice("storage.allowedTypes"),
		},
		Admin: AdminConfig{
			Username:     conf.GetString("admin.username"),
			PasswordHash: conf.GetString("admin.passwordHash"),
		},
		Database: DatabaseConfig{
			Engine:     conf.GetString("database.engine"),
			Host:       conf.GetString("database.host"),
			Port:       conf.GetString("database.port"),
			Name:       conf.GetString("database.name"),
			User:       conf.GetString("database.user"),
			Password:   conf.GetString("database.password"),
			DisableTLS: conf.GetBool("database.disableTLS"),
		},
	}
}

// NewTestConfig returns a Config suitable for tests, storing videos under `videosDir`.
func NewTestConfig(videosDir string) *Config {
	return &Config{
		Env:             EnvTest,
		Build:           "test",
		AppName:         "Videoteca",
		SecretKey:       "test-secret",
		TestMode:        true,
		ProgressBackend: "memory",
		Server: ServerConfig{
			JWTExpirationDelta: time.Hour,
			RequireAuth:        true,
			UploadRateLimit:    1000,
			UploadRateWindow:   time.Minute,
			BodyLimit:          "3G",
		},
		Storage: StorageConfig{
			VideosDir:         videosDir,
			PublicPath:        "/videos",
			MaxFilesPerUpload: 6,
			MaxFileSize:       500 * MiB,
			AllowedTypes:      []string{"video/mp4"},
		},
		Admin: AdminConfig{Username: "admin"},
	}
}

// Getwd returns the project root: the CONFIG_ROOT env var if set, else the closest parent of the
// working directory containing a go.mod file (go-test runs inside the package dir), else the working directory.
func Getwd() string {
	if root := os.Getenv("CONFIG_ROOT"); root != "" {
		return root
	}
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(fmt.Errorf("config.Getwd: %v", err))
	}
	currDir := wd
	for {
		if _, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == currDir {
			return wd
		}
		currDir = newDir
	}
}
