package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/resume-match/internal/config"
	"github.com/jonathan/resume-match/internal/db"
	"github.com/jonathan/resume-match/internal/resume"
	"github.com/jonathan/resume-match/internal/server"
	"github.com/jonathan/resume-match/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveConfigFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing the résumé, job parsing and matching endpoints.

Settings are layered: flags, then environment (PORT, DATABASE_URL,
RESUME_PATH, SKILLS_PATH, CORS_ORIGINS, AUTH_REQUIRED), then --config, then
built-in defaults.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on")
	serveCmd.Flags().StringVarP(&serveConfigFile, "config", "c", "", "Path to JSON or YAML config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveServeConfig(cmd.Flags().Changed("port"))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	srv, err := newServer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}

// resolveServeConfig layers flags over environment over the config file over defaults.
func resolveServeConfig(portFlagSet bool) (config.Config, error) {
	cfg := config.FromEnv()
	if serveConfigFile != "" {
		fileCfg, err := config.LoadConfig(serveConfigFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if portFlagSet {
		cfg.Port = servePort
	}
	if vocabularyPath != "" {
		cfg.SkillsPath = vocabularyPath
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newServer loads the startup data and wires the optional database and auth.
func newServer(ctx context.Context, cfg config.Config) (*server.Server, error) {
	vocabulary, err := loadVocabularyFrom(cfg.SkillsPath)
	if err != nil {
		return nil, err
	}

	r, err := resume.Load(cfg.ResumePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load resume: %w", err)
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	if cfg.AuthRequired && jwtConfig.IsDefaultSecret() {
		log.Printf("[auth] Warning: bearer tokens are signed with the development secret; set JWT_SECRET_KEY")
	}

	var database *db.DB
	if cfg.DatabaseURL != "" {
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to prepare database: %w", err)
		}
		log.Printf("[db] Connected")
	}

	log.Printf("Loaded %d skills, resume for %s", vocabulary.Len(), r.Contact.FullName)

	srv, err := server.New(server.Config{
		Port:         cfg.Port,
		Vocabulary:   vocabulary,
		Resume:       r,
		DB:           database,
		JWTService:   server.NewJWTService(jwtConfig),
		AuthRequired: cfg.AuthRequired,
		CORSOrigins:  cfg.CORSOrigins,
		RateLimit:    ratelimit.LoadConfig(),
	})
	if err != nil {
		database.Close()
		return nil, err
	}
	return srv, nil
}
