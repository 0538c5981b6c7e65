package main

import (
	"database/sql"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/vfg2006/engagement-automation-api/internal/config"
)

type migration struct {
	Name  string
	Query string
}

var migrations = []migration{
	{
		Name: "automations",
		Query: `CREATE TABLE IF NOT EXISTS automations (
			id            VARCHAR(64) PRIMARY KEY,
			owner_user_id VARCHAR(64) NOT NULL,
			platform      VARCHAR(32) NOT NULL,
			mother        JSONB NOT NULL,
			children      JSONB NOT NULL DEFAULT '[]',
			strategy      JSONB NOT NULL,
			status        VARCHAR(16) NOT NULL,
			metrics       JSONB NOT NULL DEFAULT '{}',
			started_at    TIMESTAMPTZ NOT NULL,
			paused_at     TIMESTAMPTZ NULL,
			resumed_at    TIMESTAMPTZ NULL,
			updated_at    TIMESTAMPTZ NOT NULL
		)`,
	},
	{
		Name:  "automations_owner_idx",
		Query: `CREATE INDEX IF NOT EXISTS automations_owner_idx ON automations (owner_user_id, started_at DESC)`,
	},
	{
		Name: "actions",
		Query: `CREATE TABLE IF NOT EXISTS actions (
			id            VARCHAR(64) PRIMARY KEY,
			automation_id VARCHAR(64) NOT NULL,
			due_at        TIMESTAMPTZ NOT NULL,
			payload       JSONB NOT NULL
		)`,
	},
	{
		Name:  "actions_automation_idx",
		Query: `CREATE INDEX IF NOT EXISTS actions_automation_idx ON actions (automation_id)`,
	},
	{
		Name:  "actions_due_idx",
		Query: `CREATE INDEX IF NOT EXISTS actions_due_idx ON actions (due_at)`,
	},
	{
		Name: "interactions",
		Query: `CREATE TABLE IF NOT EXISTS interactions (
			id         BIGSERIAL PRIMARY KEY,
			account_id VARCHAR(128) NOT NULL,
			platform   VARCHAR(32) NOT NULL,
			content_id VARCHAR(256) NOT NULL DEFAULT '',
			type       VARCHAR(32) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
	},
	{
		Name:  "interactions_account_idx",
		Query: `CREATE INDEX IF NOT EXISTS interactions_account_idx ON interactions (account_id, platform, created_at)`,
	},
}

func setupLogger() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Iniciando script de migração...")
}

func connectionString() string {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("ERRO ao carregar configuração: %v", err)
	}
	return cfg.Database.DSN
}

func main() {
	setupLogger()

	db, err := sql.Open("postgres", connectionString())
	if err != nil {
		log.Fatalf("ERRO ao abrir conexão: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ERRO ao conectar no banco: %v", err)
	}

	startTime := time.Now()
	log.Println("Iniciando transação...")

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("ERRO ao iniciar transação: %v", err)
	}

	for _, m := range migrations {
		if _, err := tx.Exec(m.Query); err != nil {
			log.Printf("ERRO ao aplicar migração %s: %v", m.Name, err)
			if err := tx.Rollback(); err != nil {
				log.Fatalf("ERRO ao reverter transação: %v", err)
			}
			log.Println("Transação revertida")
			os.Exit(1)
		}
		log.Printf("Migração %s aplicada", m.Name)
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("ERRO ao confirmar transação: %v", err)
	}

	log.Printf("Migração concluída em %v!", time.Since(startTime))
}
