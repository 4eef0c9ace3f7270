package cmd

type Config struct {
	HTTPPort              string
	BaseURL               string
	DBHost                string
	DBPort                string
	DBUser                string
	DBPassword            string
	DBName                string
	DBSslMode             string
	AmqpURL               string
	StalePendingThreshold string
}
