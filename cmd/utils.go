package cmd

import (
	"flag"
	"log"
	"log/slog"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads environment variables from the file named by the -env
// flag. Without the flag the process environment is used as-is, which is
// the normal deployed configuration.
func LoadEnvFile() {
	var envPath string
	flag.StringVar(&envPath, "env", "", "path to a dotenv file to load before parsing config")
	flag.Parse()

	if envPath == "" {
		slog.Info("no env file specified, using os.Environ only")
		return
	}

	if err := godotenv.Load(envPath); err != nil {
		log.Fatalf("error loading .env file '%s': %v", envPath, err)
	}
	slog.Info("loaded env file", "path", envPath)
}
