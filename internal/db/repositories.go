package db

import "gorm.io/gorm"

type Repositories struct {
	Users      *UserRepository
	References *ReferenceRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(database),
		References: NewReferenceRepository(database),
	}
}
