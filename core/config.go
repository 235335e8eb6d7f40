package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Debug    bool
	TestMode bool
	AppName  string
	Env      string
	Build    string
	WorkDir  string

	RollbarToken string

	// email
	EmailBackend   string // console or sendgrid
	SendgridApiKey string
	FromEmail      string
	FromName       string

	// fees
	FeePerCredit float64
	Currency     string

	RequiredCredits int
	SeedSampleData  bool
	PaymentQRSize   int
}

// NewConfig reads the configuration from the environment, optionally loaded from `config/.env.<env>`.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "VKU Student Records")
	v.SetDefault("build", "develop")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("emailBackend", "console")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("fromEmail", "no-reply@vku.udn.vn")
	v.SetDefault("fromName", "VKU Student Records")
	v.SetDefault("feePerCredit", 1000000.0)
	v.SetDefault("currency", "VND")
	v.SetDefault("requiredCredits", 120)
	v.SetDefault("seedSampleData", true)
	v.SetDefault("paymentQRSize", 256)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("config.os.Getwd(): %v", err)
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Debug:           v.GetBool("debug"),
		TestMode:        v.GetBool("testMode"),
		AppName:         v.GetString("appName"),
		Env:             env,
		Build:           v.GetString("build"),
		WorkDir:         wd,
		RollbarToken:    v.GetString("rollbarToken"),
		EmailBackend:    strings.ToLower(v.GetString("emailBackend")),
		SendgridApiKey:  v.GetString("sendgridApiKey"),
		FromEmail:       v.GetString("fromEmail"),
		FromName:        v.GetString("fromName"),
		FeePerCredit:    v.GetFloat64("feePerCredit"),
		Currency:        v.GetString("currency"),
		RequiredCredits: v.GetInt("requiredCredits"),
		SeedSampleData:  v.GetBool("seedSampleData"),
		PaymentQRSize:   v.GetInt("paymentQRSize"),
	}
}

func (c *Config) DefaultFromEmail() mail.Address {
	return mail.Address{Name: c.FromName, Address: c.FromEmail}
}
