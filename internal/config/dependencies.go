package config

import (
	"context"

	"github.com/go-playground/validator/v10"
)

var (
	// Global dependency yang akan digunakan di seluruh aplikasi
	Validate = validator.New()
	Ctx      = context.Background()
)
