package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	Name      string    `gorm:"index;not null" json:"name" example:"Jane Doe"`
	Age       int       `gorm:"not null" json:"age" example:"28"`
	Gender    string    `gorm:"not null" json:"gender" example:"female"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email" example:"jane@example.com"`
	City      string    `gorm:"index;not null" json:"city" example:"Berlin"`
	Interests []string  `gorm:"type:text;serializer:json" json:"interests" example:"hiking,music"`
	IsActive  bool      `gorm:"index;not null" json:"is_active" example:"true"`
}

// BeforeSave keeps the stored interests column a JSON list, never null.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Interests == nil {
		u.Interests = []string{}
	}
	return nil
}

func (u *User) AfterFind(tx *gorm.DB) error {
	if u.Interests == nil {
		u.Interests = []string{}
	}
	return nil
}

// CreateUserInput is the registration payload. Format rules are enforced by
// gin binding before it reaches the service.
type CreateUserInput struct {
	Name      string   `json:"name" binding:"required,min=2,max=50,alphaspace" example:"Jane Doe"`
	Age       int      `json:"age" binding:"required,gte=18,lte=100" example:"28"`
	Gender    string   `json:"gender" binding:"required,oneof=male female other" example:"female"`
	Email     string   `json:"email" binding:"required,email" example:"jane@example.com"`
	City      string   `json:"city" binding:"required,alphaspace" example:"Berlin"`
	Interests []string `json:"interests" binding:"required" example:"hiking,music"`
}

func (in CreateUserInput) ToUser() *User {
	interests := make([]string, len(in.Interests))
	copy(interests, in.Interests)
	return &User{
		Name:      in.Name,
		Age:       in.Age,
		Gender:    in.Gender,
		Email:     in.Email,
		City:      in.City,
		Interests: interests,
		IsActive:  true,
	}
}

// UserPatch carries the fields of a partial update. A nil field is left
// untouched.
type UserPatch struct {
	Name      *string   `json:"name,omitempty" binding:"omitempty,min=2,max=50,alphaspace"`
	Age       *int      `json:"age,omitempty" binding:"omitempty,gte=18,lte=100"`
	Gender    *string   `json:"gender,omitempty" binding:"omitempty,oneof=male female other"`
	Email     *string   `json:"email,omitempty" binding:"omitempty,email"`
	City      *string   `json:"city,omitempty" binding:"omitempty,alphaspace"`
	Interests *[]string `json:"interests,omitempty"`
}

func (p UserPatch) IsEmpty() bool {
	return len(p.Columns()) == 0
}

// Columns lists the database columns p changes.
func (p UserPatch) Columns() []string {
	var columns []string
	if p.Name != nil {
		columns = append(columns, "name")
	}
	if p.Age != nil {
		columns = append(columns, "age")
	}
	if p.Gender != nil {
		columns = append(columns, "gender")
	}
	if p.Email != nil {
		columns = append(columns, "email")
	}
	if p.City != nil {
		columns = append(columns, "city")
	}
	if p.Interests != nil {
		columns = append(columns, "interests")
	}
	return columns
}

// ApplyPatch merges the provided fields of p into u.
func (u *User) ApplyPatch(p UserPatch) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.City != nil {
		u.City = *p.City
	}
	if p.Interests != nil {
		interests := make([]string, len(*p.Interests))
		copy(interests, *p.Interests)
		u.Interests = interests
	}
}
