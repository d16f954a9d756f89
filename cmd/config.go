package cmd

type Config struct {
	HTTPPort                string
	DBHost                  string
	DBPort                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	DBSslMode               string
	AuthUsers               string
	SeedDemoData            bool
	StaleClaimThresholdMins int
	OllamaHost              string
	OllamaAPIKey            string
	OllamaModel             string
}
