package main

import (
	"log"
	"os"

	"konfeksiyon-backend/internal/config"
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// İlk kurulumda admin hesabı açar. Sistemde zaten admin varsa hiçbir
// şey yapmaz. ADMIN_EMAIL ve ADMIN_PASSWORD zorunlu.
func main() {
	cfg := config.Load()
	database.Init(cfg)

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Admin"
	}
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL ve ADMIN_PASSWORD tanımlanmalı")
	}

	var count int64
	database.DB.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count)
	if count > 0 {
		log.Println("Admin zaten mevcut, çıkılıyor")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Şifre hashlenemedi:", err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		log.Fatal("Admin oluşturulamadı:", err)
	}

	log.Println("Admin oluşturuldu:", user.Email)
}
