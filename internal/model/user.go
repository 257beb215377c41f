package model

import "time"

type User struct {
	ID          string    `json:"id"`
	CognitoSub  string    `json:"cognito_sub"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
