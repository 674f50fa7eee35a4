package main

import (
	"empdir/inner/auth"
	"empdir/inner/common"
	"empdir/inner/database"
	"empdir/inner/employee"
	"empdir/inner/info"
	"empdir/inner/storage"
	"empdir/inner/validator"
	"empdir/inner/web"

	"go.uber.org/zap"
)

// @title Employee Directory API
// @version 1.0
// @description REST API каталога сотрудников
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := common.GetConfig(".env")
	logger := common.NewLogger(cfg)
	defer func() { _ = logger.Sync() }()

	db, err := database.ConnectDbWithCfg(cfg)
	if err != nil {
		logger.Fatal("Connection error", zap.Error(err))
	}

	pictures, err := storage.ConnectMinio(cfg, logger)
	if err != nil {
		logger.Fatal("Storage error", zap.Error(err))
	}

	vld := validator.New()
	server := web.NewServer(cfg, logger)

	employeeRepo := employee.NewEmployeeRepository(db)
	employeeService := employee.NewService(employeeRepo, vld, pictures, logger)
	employeeController := employee.NewController(server, employeeService, logger)
	employeeController.RegisterRoutes()

	userRepo := auth.NewUserRepository(db)
	authService := auth.NewService(userRepo, vld, auth.NewBcryptHasher(), cfg, logger)
	authController := auth.NewController(server, authService, logger)
	authController.RegisterRoutes()

	infoController := info.NewController(server, cfg, db)
	infoController.RegisterRoutes()

	web.RegisterSwaggerRoutes(server)

	logger.Info("Starting server", zap.String("port", cfg.AppPort))
	if err := server.App.Listen(":" + cfg.AppPort); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
