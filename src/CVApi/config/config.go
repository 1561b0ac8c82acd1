package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port     string
	Docstore string // "redis" or "mysql"
	RedisURL string
	MySQLDSN string

	JWTSecret      string
	MemberPassword string
	AdminPassword  string

	AIProvider string
	OpenAIKey  string
	ClaudeKey  string
	AIModel    string

	CheckRate   int // moderation checks per identity per window
	CheckWindow int // window in seconds
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func Load() Config {
	rate, _ := strconv.Atoi(getenv("CHECK_RATE", "5"))
	window, _ := strconv.Atoi(getenv("CHECK_WINDOW_SECONDS", "60"))
	return Config{
		Port:           getenv("PORT", "8080"),
		Docstore:       getenv("DOCSTORE", "redis"),
		RedisURL:       getenv("REDIS_URL", "redis://localhost:6379/0"),
		MySQLDSN:       os.Getenv("MYSQL_DSN"),
		JWTSecret:      getenv("JWT_SECRET", ""),
		MemberPassword: getenv("MEMBER_PASSWORD", ""),
		AdminPassword:  getenv("ADMIN_PASSWORD", ""),
		AIProvider:     getenv("AI_PROVIDER", "openai"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		ClaudeKey:      os.Getenv("CLAUDE_API_KEY"),
		AIModel:        os.Getenv("AI_MODEL"),
		CheckRate:      rate,
		CheckWindow:    window,
	}
}
