package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type ENV struct {
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	Port        string
	AppURL      string
	AppEnv      string
	AppAuthKey  string
	AppEncKey   string
	UploadDir   string
	UploadURL   string
	CSRFAuthKey string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		DBHost:      os.Getenv("DB_HOST"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBPort:      os.Getenv("DB_PORT"),
		Port:        os.Getenv("APP_PORT"),
		AppURL:      os.Getenv("APP_URL"),
		AppEnv:      os.Getenv("APP_ENV"),
		AppAuthKey:  os.Getenv("APP_AUTH_KEY"),
		AppEncKey:   os.Getenv("APP_ENC_KEY"),
		UploadDir:   os.Getenv("UPLOAD_DIR"),
		UploadURL:   os.Getenv("UPLOAD_URL"),
		CSRFAuthKey: os.Getenv("CSRF_AUTH_KEY"),
	}

}

var LoadENV = LoadEnv()
