package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	"github.com/jwalitptl/hospital-admin/pkg/security"
)

// CredentialProvider matches a username and password against one population of users.
type CredentialProvider interface {
	Name() string
	Match(ctx context.Context, username, password string) (*model.Session, bool, error)
}

type Account struct {
	Username string
	Password string
}

// DefaultAdmins is the seed admin list used when none is configured.
var DefaultAdmins = []Account{{Username: "admin", Password: "Admin123"}}

type adminProvider struct {
	accounts []Account
	hasher   security.PasswordHasher
}

func NewAdminProvider(accounts []Account, hasher security.PasswordHasher) CredentialProvider {
	if len(accounts) == 0 {
		accounts = DefaultAdmins
	}
	return &adminProvider{accounts: accounts, hasher: hasher}
}

func (p *adminProvider) Name() string { return "admin" }

func (p *adminProvider) Match(_ context.Context, username, password string) (*model.Session, bool, error) {
	for i, acc := range p.accounts {
		if acc.Username != username {
			continue
		}
		if p.hasher.Compare(acc.Password, password) == nil {
			// Admins have no store id; their position in the list stands in.
			return model.NewSession(int64(i+1), acc.Username, model.RoleAdmin), true, nil
		}
	}
	return nil, false, nil
}

type doctorProvider struct {
	repo   repository.DoctorRepository
	hasher security.PasswordHasher
}

func NewDoctorProvider(repo repository.DoctorRepository, hasher security.PasswordHasher) CredentialProvider {
	return &doctorProvider{repo: repo, hasher: hasher}
}

func (p *doctorProvider) Name() string { return "doctor" }

func (p *doctorProvider) Match(ctx context.Context, username, password string) (*model.Session, bool, error) {
	doctors, err := p.repo.List(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to list doctors: %w", err)
	}

	for _, d := range doctors {
		if d.Username != username {
			continue
		}
		err := p.hasher.Compare(d.PasswordHash, password)
		switch {
		case err == nil:
			return model.NewSession(d.ID, d.Username, model.RoleDoctor), true, nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			continue
		default:
			return nil, false, fmt.Errorf("failed to compare password: %w", err)
		}
	}
	return nil, false, nil
}
