package worker

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/saludplus/backend/internal/config"
	emailProvider "github.com/saludplus/backend/pkg/email"
)

type Workers struct {
	EmailSender EmailSender
}

type Deps struct {
	Redis         redis.UniversalClient
	EmailProvider emailProvider.Sender
	Config        *config.Config
}

type EmailSender interface {
	SendUserVerificationEmail(ctx context.Context, email string, verificationCode string) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		EmailSender: newEmailSender(deps.EmailProvider, deps.Config.Email),
	}
}
