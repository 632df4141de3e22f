package main

import (
	"github.com/askfield/user_service/config"
	"github.com/askfield/user_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
