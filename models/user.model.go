package models

import (
	"time"
)

// UserType values stored in users.user_type
const (
	UserTypeStudent = 0
	UserTypeTeacher = 1
)

// RegistrationStatus enum values
const (
	RegistrationPending  = "PENDING"
	RegistrationApproved = "APPROVED"
)

type User struct {
	ID                 uint      `gorm:"primaryKey" json:"user_id"`
	FullName           string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Username           string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Email              string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password           string    `gorm:"type:varchar(255);default:''" json:"-"` // bcrypt hash, empty until approval
	UserType           int       `gorm:"not null" json:"user_type"`              // 1 teacher, 0 student
	RegistrationStatus string    `gorm:"type:varchar(16);default:'PENDING'" json:"registration_status"`
	School             string    `gorm:"type:varchar(255);not null" json:"school"`
	ProfilePicture     string    `gorm:"type:varchar(255);default:''" json:"profile_picture"`
	RegistrationDate   time.Time `gorm:"autoCreateTime" json:"registration_date"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u User) IsTeacher() bool  { return u.UserType == UserTypeTeacher }
func (u User) IsApproved() bool { return u.RegistrationStatus == RegistrationApproved }

// Role maps the stored user type flag onto the role enumeration.
func (u User) Role() Role {
	if u.IsTeacher() {
		return RoleTeacher
	}
	return RoleStudent
}

// Teacher shares its primary key with the owning user.
type Teacher struct {
	TeacherID uint   `gorm:"primaryKey;autoIncrement:false" json:"teacher_id"`
	NIP       string `gorm:"column:nip;type:varchar(255);uniqueIndex;not null" json:"nip"`
}

func (Teacher) TableName() string {
	return "teachers"
}

// Student shares its primary key with the owning user.
type Student struct {
	StudentID uint   `gorm:"primaryKey;autoIncrement:false" json:"student_id"`
	NISN      string `gorm:"column:nisn;type:varchar(255);uniqueIndex;not null" json:"nisn"`
}

func (Student) TableName() string {
	return "students"
}
