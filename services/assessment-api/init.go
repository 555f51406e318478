package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	"github.com/Kleo07/MindSpaceX/pkg/apihelpers"
	"github.com/Kleo07/MindSpaceX/pkg/db"
	"github.com/Kleo07/MindSpaceX/pkg/utils"

	assessmentDB "github.com/Kleo07/MindSpaceX/pkg/db/assessment"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_ASSESSMENT_DB_USERNAME = "ASSESSMENT_DB_USERNAME"
	ENV_ASSESSMENT_DB_PASSWORD = "ASSESSMENT_DB_PASSWORD"
	ENV_SESSION_TOKEN_SIGN_KEY = "SESSION_TOKEN_SIGN_KEY"
)

type AssessmentApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`

		// Mutual TLS configs
		MTLS struct {
			Use              bool                        `json:"use" yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `json:"certificate_paths" yaml:"certificate_paths"`
		} `json:"mtls" yaml:"mtls"`
	} `json:"gin_config" yaml:"gin_config"`

	// Identity provider session configs
	SessionConfig struct {
		TokenSignKey            string `json:"token_sign_key" yaml:"token_sign_key"`
		DevTokenEndpointEnabled bool   `json:"dev_token_endpoint_enabled" yaml:"dev_token_endpoint_enabled"`
		DevTokenExpiresIn       string `json:"dev_token_expires_in" yaml:"dev_token_expires_in"`
	} `json:"session_config" yaml:"session_config"`

	// DB configs
	DBConfigs struct {
		AssessmentDB db.DBConfigYaml `json:"assessment_db" yaml:"assessment_db"`
	} `json:"db_configs" yaml:"db_configs"`
}

var (
	conf                AssessmentApiConfig
	assessmentDBService *assessmentDB.AssessmentDBService
	devTokenExpiresIn   time.Duration
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(
		conf.Logging.LogLevel,
		conf.Logging.IncludeSrc,
		conf.Logging.LogToFile,
		conf.Logging.Filename,
		conf.Logging.MaxSize,
		conf.Logging.MaxAge,
		conf.Logging.MaxBackups,
		conf.Logging.CompressOldLogs,
	)

	// Override secrets from environment variables
	secretsOverride()

	if conf.SessionConfig.TokenSignKey == "" {
		slog.Error("Session token sign key not set - configure SESSION_TOKEN_SIGN_KEY env variable.")
		panic("session token sign key not set")
	}

	devTokenExpiresIn = 24 * time.Hour
	if conf.SessionConfig.DevTokenExpiresIn != "" {
		devTokenExpiresIn, err = utils.ParseDurationString(conf.SessionConfig.DevTokenExpiresIn)
		if err != nil {
			slog.Error("Could not parse dev token expiry", slog.String("error", err.Error()))
			panic(err)
		}
	}

	// Init DBs
	initDBs()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_ASSESSMENT_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.AssessmentDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_ASSESSMENT_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.AssessmentDB.Password = dbPassword
	}

	if tokenSignKey := os.Getenv(ENV_SESSION_TOKEN_SIGN_KEY); tokenSignKey != "" {
		conf.SessionConfig.TokenSignKey = tokenSignKey
	}
}

func initDBs() {
	var err error
	assessmentDBService, err = assessmentDB.NewAssessmentDBService(db.DBConfigFromYamlObj(conf.DBConfigs.AssessmentDB))
	if err != nil {
		slog.Error("Error connecting to Assessment DB", slog.String("error", err.Error()))
		panic(err)
	}
}
