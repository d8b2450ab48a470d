package config

import (
	"gopkg.in/yaml.v3"
	"os"
)

type JWTConfig struct {
	Secret       string `yaml:"secret"`
	AccessTTLMin int    `yaml:"access_ttl_minutes"`
}

type OTPConfig struct {
	TTLMinutes       int      `yaml:"ttl_minutes"`
	SuperAdminEmails []string `yaml:"superadmin_emails"`
}

type TelegramConfig struct {
	BotToken    string `yaml:"bot_token"`
	StaffChatID int64  `yaml:"staff_chat_id"`
}

type FilesConfig struct {
	RootDir string `yaml:"root_dir"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Telegram TelegramConfig `yaml:"telegram"`
	Files    FilesConfig    `yaml:"files"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	if cfg.JWT.AccessTTLMin <= 0 {
		cfg.JWT.AccessTTLMin = 15
	}
	if cfg.OTP.TTLMinutes <= 0 {
		cfg.OTP.TTLMinutes = 10
	}
	if cfg.Files.RootDir == "" {
		cfg.Files.RootDir = "./files"
	}
	return &cfg
}
