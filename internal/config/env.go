package config

import (
	"os"
	"strconv"
	"strings"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// eSewa signing configuration. The secret is shared with the gateway
	// and must only ever arrive through the environment.
	EsewaSecretKey    string
	EsewaProductCode  string
	EsewaFormURL      string
	PaymentSuccessURL string
	PaymentFailureURL string
}

func LoadEnv() Env {
	return Env{
		AppAddr: getenv("APP_ADDR", ":8080"),
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		DBUser: getenv("DB_USER", "root"),
		DBPass: strings.TrimSpace(os.Getenv("DB_PASS")),
		DBHost: getenv("DB_HOST", "127.0.0.1:3306"),
		DBName: getenv("DB_NAME", "elite_roadways"),

		JWTSecret: getenv("JWT_SECRET", "super-secret-key-change-me"),

		SMTPHost: getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: getenvInt("SMTP_PORT", 587),
		SMTPUser: strings.TrimSpace(os.Getenv("SMTP_USER")),
		// Strip quotes accidentally added in .env files.
		SMTPPass: strings.ReplaceAll(strings.TrimSpace(os.Getenv("SMTP_PASS")), `"`, ""),
		SMTPFrom: getenv("SMTP_FROM", strings.TrimSpace(os.Getenv("SMTP_USER"))),

		EsewaSecretKey:    strings.TrimSpace(os.Getenv("ESEWA_SECRET_KEY")),
		EsewaProductCode:  getenv("ESEWA_PRODUCT_CODE", "EPAYTEST"),
		EsewaFormURL:      getenv("ESEWA_FORM_URL", "https://rc-epay.esewa.com.np/api/epay/main/v2/form"),
		PaymentSuccessURL: getenv("PAYMENT_SUCCESS_URL", "http://localhost:5173/success"),
		PaymentFailureURL: getenv("PAYMENT_FAILURE_URL", "http://localhost:5173/failure"),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
