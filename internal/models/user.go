package models

import "time"

type UserRole string

const (
	RoleAdmin         UserRole = "admin"
	RoleFabricStaff   UserRole = "fabric_staff"
	RoleCuttingMaster UserRole = "cutting_master"
	RoleLineMaster    UserRole = "line_master"
	RoleFinishingHead UserRole = "finishing_head"
	RoleWarehouseHead UserRole = "warehouse_head"
	RoleSalesTeam     UserRole = "sales_team"
	RoleQCTeam        UserRole = "qc_team"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:150;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         UserRole  `gorm:"size:30;not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin güncelleme/silme yetki kontrollerinde kullanılır.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
