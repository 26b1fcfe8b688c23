package api

import "github.com/terraincognita07/fortuna/internal/services"

type loginInput struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type profileInput struct {
	Name            string `json:"name" form:"name"`
	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	Birthday        string `json:"birthday" form:"birthday"`
	PersonalityType string `json:"personality_type" form:"personality_type"`
}

func (input profileInput) toService() services.ProfileInput {
	return services.ProfileInput{
		Name:            input.Name,
		Username:        input.Username,
		Email:           input.Email,
		Birthday:        input.Birthday,
		PersonalityType: input.PersonalityType,
	}
}

type registrationInput struct {
	Name            string `json:"name" form:"name"`
	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	Birthday        string `json:"birthday" form:"birthday"`
	PersonalityType string `json:"personality_type" form:"personality_type"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

func (input registrationInput) toService() services.RegistrationInput {
	return services.RegistrationInput{
		ProfileInput: services.ProfileInput{
			Name:            input.Name,
			Username:        input.Username,
			Email:           input.Email,
			Birthday:        input.Birthday,
			PersonalityType: input.PersonalityType,
		},
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
	}
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}
