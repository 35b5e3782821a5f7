package config

import (
	"encoding/json"
	"log"
	"os"
)

type Configuration struct {
	ApiPort   string `json:"api_port"`
	PublicURL string `json:"public_url"` // base dos links enviados por e-mail (ex: https://frutaria.app)

	Database string `json:"database"` // "sqlite3" ou "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	Security struct {
		SecretKey            string `json:"secret_key"`
		ResetTokenMaxValid   int    `json:"reset_token_max_valid_seconds"`
		SessionMaxValidHours int    `json:"session_max_valid_hours"`
	} `json:"security"`

	Smtp struct {
		Host           string `json:"host"`
		Port           int    `json:"port"`
		User           string `json:"user"`
		Pass           string `json:"pass"`
		From           string `json:"from"`
		TimeoutSeconds int    `json:"timeout_seconds"`
	} `json:"smtp"`

	Search struct {
		AppID          string `json:"app_id"`
		ApiKey         string `json:"api_key"`
		Index          string `json:"index"`
		BaseURL        string `json:"base_url"` // vazio = host padrão do provedor
		TimeoutSeconds int    `json:"timeout_seconds"`
	} `json:"search"`
}

func Get(path string) Configuration {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	var c Configuration
	if err := json.Unmarshal(b, &c); err != nil {
		log.Fatal(err)
	}

	// defaults (pra evitar nil/zero chato)
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.PublicURL == "" {
		c.PublicURL = "http://localhost:" + c.ApiPort
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.Security.ResetTokenMaxValid <= 0 {
		c.Security.ResetTokenMaxValid = 3600
	}
	if c.Security.SessionMaxValidHours <= 0 {
		c.Security.SessionMaxValidHours = 24
	}
	if c.Smtp.Port <= 0 {
		c.Smtp.Port = 587
	}
	if c.Smtp.TimeoutSeconds <= 0 {
		c.Smtp.TimeoutSeconds = 10
	}
	if c.Search.Index == "" {
		c.Search.Index = "products"
	}
	if c.Search.TimeoutSeconds <= 0 {
		c.Search.TimeoutSeconds = 10
	}

	// segredos podem vir por env (pra trocar sem rebuild)
	if v := getenv("SECRET_KEY", ""); v != "" {
		c.Security.SecretKey = v
	}
	if v := getenv("SMTP_PASS", ""); v != "" {
		c.Smtp.Pass = v
	}
	if v := getenv("SEARCH_API_KEY", ""); v != "" {
		c.Search.ApiKey = v
	}
	if c.Security.SecretKey == "" {
		c.Security.SecretKey = "CHANGE_ME"
	}

	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
