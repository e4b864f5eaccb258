package service

import (
	"github.com/saludplus/backend/internal/config"
	"github.com/saludplus/backend/internal/repository"
	"github.com/saludplus/backend/internal/sacs"
	"github.com/saludplus/backend/pkg/auth"
	"github.com/saludplus/backend/pkg/hash"
	"github.com/saludplus/backend/pkg/otp"
)

type Services struct {
	Registrations *SessionManager
}

type Deps struct {
	Config       *config.Config
	Hasher       hash.PasswordHasher
	TokenManager auth.TokenManager
	OtpGenerator otp.Generator
	Repos        *repository.Repositories
	SacsClient   *sacs.Client
	Notifier     Notifier
}

func NewServices(deps Deps) *Services {
	notifier := deps.Notifier
	if notifier == nil {
		notifier = NewLogNotifier()
	}

	return &Services{
		Registrations: newSessionManager(coordinatorDeps{
			cfg:          deps.Config.Registration,
			repos:        deps.Repos,
			registry:     deps.SacsClient,
			hasher:       deps.Hasher,
			tokenManager: deps.TokenManager,
			otpGenerator: deps.OtpGenerator,
			notifier:     notifier,
			codeLength:   deps.Config.Auth.VerificationCodeLength,
		}, deps.Config.Registration.SessionIdleTTL),
	}
}
