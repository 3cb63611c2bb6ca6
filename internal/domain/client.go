package domain

import "time"

type Client struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	DNI       string    `json:"dni"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedOn time.Time `json:"created_on"`
}
