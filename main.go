package main

import (
	"vfd-portal/core/logger"
	"vfd-portal/core/server"
)

// @title Cool Spring VFD Portal API
// @version 1.0
// @description Events, Google Calendar mirroring and sign-up sheets for the members' portal

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
