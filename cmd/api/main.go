package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/config"
	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/db"
	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/handlers"
	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/middleware"
	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/models"
	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	rdb := session.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("redis not reachable: ", err)
	}
	sessions := session.NewStore(rdb)

	if err := gdb.AutoMigrate(&models.User{}, &models.UserProfile{}); err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		// bounds what an oversized resume upload can cost before rejection
		BodyLimit: cfg.MaxUploadMB * 1024 * 1024,
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://127.0.0.1:3000, http://localhost:3000",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	app.Static("/uploads", cfg.UploadDir)

	authH := &handlers.AuthHandler{
		DB:        gdb,
		Sessions:  sessions,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
	}
	profileH := handlers.NewProfileHandler(gdb, cfg.UploadDir)
	adminH := handlers.NewAdminHandler(gdb)

	api := app.Group("/api")

	// public
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)

	// protected (JWT cookie + live session)
	protected := api.Group("/",
		middleware.JWTFromCookie(cfg.JWTSecret, sessions),
		middleware.AttachJWTLocals(),
	)

	protected.Get("/profile/me", profileH.Me)
	protected.Put("/profile/edit", profileH.Edit)

	protected.Get("/admin/users",
		middleware.RequireStaff(),
		adminH.ListUsers,
	)

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
